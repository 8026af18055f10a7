// Package logging builds the slog loggers used across aniharvest.
//
// Two handler formats exist: a console handler producing compact
// timestamp/level/component lines with key=value attributes, and a JSON
// handler for machine consumption. Output can fan out to stdout/stderr and a
// log file under the configured log directory. The attr helpers keep call
// sites uniform; NewNop supplies a discard logger for tests.
package logging

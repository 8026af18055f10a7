// Package harvest drives the identifier sweep: batched concurrent listing
// fetches, range inference, and catalog enrichment, producing one series
// record per successful identifier and one recorded URL per failed one.
package harvest

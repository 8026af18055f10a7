// Package listing fetches per-identifier episode listings from the source
// site and derives episode ranges from them.
//
// The source answers GET <base>/<id> with a JSON envelope whose "html" field
// holds the listing markup. The Client performs one request per identifier,
// extracts the episode items from the markup, and delegates to InferRange for
// the pure min/max/name-token derivation. Every per-item failure is reported
// as one of the sentinel errors in errors.go so the orchestrator can record
// the identifier as failed without aborting the sweep.
package listing

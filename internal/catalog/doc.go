// Package catalog enriches harvested name tokens against the TMDB TV search
// API.
//
// The Client is a minimal TMDB search client. The Enricher wraps it with the
// normalization and graceful-degradation rules the pipeline relies on:
// enrichment is total and never fails an item, falling back to a title-cased
// rendition of the normalized name whenever the oracle has no match or cannot
// be reached. An optional SQLite-backed Cache memoizes lookups per normalized
// query so a large sweep does not repeat identical searches.
package catalog

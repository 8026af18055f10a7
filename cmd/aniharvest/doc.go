// Command aniharvest sweeps a numeric identifier range on an anime listing
// site, infers per-series episode ranges, enriches them with TMDB metadata,
// and writes the dataset plus any failed request URLs to disk.
package main

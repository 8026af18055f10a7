package harvest

import "fmt"

// SeriesRecord is one harvested series as it appears in the output dataset.
// CatalogID and Year stay nil (serialized as null) when enrichment found no
// usable catalog match.
type SeriesRecord struct {
	SerialNo  int    `json:"serial_no"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	CatalogID *int64 `json:"catalog_id"`
	// ExternalID is a reserved dataset field. Nothing populates it; it always
	// serializes as null.
	ExternalID    *int64 `json:"external_id"`
	Year          *int   `json:"year"`
	Episodes      string `json:"episodes"`
	EpisodeOffset int    `json:"episode_offset"`

	// SourceID is the swept identifier the record was derived from. It is not
	// part of the dataset contract.
	SourceID int `json:"-"`
}

// FormatEpisodes renders an inclusive episode range as "N" for a single
// episode or "N-M" otherwise.
func FormatEpisodes(first, last int) string {
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d-%d", first, last)
}

// IsSingleEpisode reports whether the record covers exactly one episode.
func (r SeriesRecord) IsSingleEpisode() bool {
	for _, ch := range r.Episodes {
		if ch == '-' {
			return false
		}
	}
	return true
}

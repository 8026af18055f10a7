package listing

import (
	"regexp"
	"strconv"
	"strings"
)

// RangeResult is the derived episode span and name token for one identifier.
type RangeResult struct {
	FirstEpisode int
	LastEpisode  int
	// NameToken is the /watch/ path slug from the first item's anchor. The
	// query delimiter stays attached; the catalog enricher strips it together
	// with any per-episode suffix.
	NameToken string
}

var watchPattern = regexp.MustCompile(`/watch/([^?]+)`)

// InferRange derives first/last episode numbers and the name token from the
// items of one listing. Items whose id is non-numeric are skipped; the item
// order is the source order and carries no sorting guarantee.
func InferRange(items []EpisodeItem) (RangeResult, error) {
	if len(items) == 0 {
		return RangeResult{}, ErrEmptyListing
	}

	first, last := 0, 0
	numeric := 0
	for _, item := range items {
		id, err := strconv.Atoi(strings.TrimSpace(item.ID))
		if err != nil {
			continue
		}
		if numeric == 0 || id < first {
			first = id
		}
		if numeric == 0 || id > last {
			last = id
		}
		numeric++
	}
	if numeric == 0 {
		return RangeResult{}, ErrNoNumericEpisodes
	}

	match := watchPattern.FindStringSubmatch(items[0].Href)
	if match == nil {
		return RangeResult{}, ErrMissingNameToken
	}

	return RangeResult{
		FirstEpisode: first,
		LastEpisode:  last,
		NameToken:    match[1] + "?",
	}, nil
}

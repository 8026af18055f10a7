package catalog

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"aniharvest/internal/logging"
)

// Match is the best-effort catalog metadata for one name token. CatalogID and
// Year are nil when the oracle produced no usable match; DisplayTitle is
// always set.
type Match struct {
	CatalogID    *int64
	Year         *int
	DisplayTitle string
}

// unknownTitle is the sentinel for tokens that normalize to nothing.
const unknownTitle = "Unknown Anime"

// episodeSuffix matches the per-episode "-<digits>?" tail that leaks into
// name tokens. Digit-bearing titles (e.g. "86-eighty-six") can be mis-stripped
// by this heuristic; that matches the source behavior and is left as is.
var episodeSuffix = regexp.MustCompile(`-\d+\?$`)

var titleCaser = cases.Title(language.Und)

// NormalizeName cleans a raw name token into a searchable free-text query.
func NormalizeName(token string) string {
	token = episodeSuffix.ReplaceAllString(token, "")
	token = strings.ReplaceAll(token, "-", " ")
	return strings.TrimSpace(token)
}

// Enricher resolves name tokens to catalog matches with graceful degradation.
type Enricher struct {
	searcher Searcher
	cache    *Cache
	logger   *slog.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithCache attaches a lookup cache. A nil cache is ignored.
func WithCache(cache *Cache) EnricherOption {
	return func(e *Enricher) {
		e.cache = cache
	}
}

// WithLogger attaches a logger for diagnostic output.
func WithLogger(logger *slog.Logger) EnricherOption {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEnricher builds an enricher around the given searcher.
func NewEnricher(searcher Searcher, opts ...EnricherOption) *Enricher {
	enricher := &Enricher{
		searcher: searcher,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(enricher)
	}
	return enricher
}

// Enrich looks up the best catalog match for a name token. It is total: every
// oracle failure, including transport errors and malformed responses, degrades
// to a match that carries only the title-cased normalized name.
func (e *Enricher) Enrich(ctx context.Context, nameToken string) Match {
	name := NormalizeName(nameToken)
	if name == "" {
		return Match{DisplayTitle: unknownTitle}
	}
	fallback := Match{DisplayTitle: titleCaser.String(name)}

	if cached, ok := e.cacheLookup(ctx, name); ok {
		return cached
	}

	if e.searcher == nil {
		return fallback
	}
	resp, err := e.searcher.SearchTV(ctx, name)
	if err != nil {
		e.logger.Debug("catalog search failed", logging.String("query", name), logging.Error(err))
		return fallback
	}
	if resp == nil || len(resp.Results) == 0 {
		e.cacheStore(ctx, name, fallback)
		return fallback
	}

	top := resp.Results[0]
	match := Match{DisplayTitle: strings.TrimSpace(top.Name)}
	if match.DisplayTitle == "" {
		match.DisplayTitle = fallback.DisplayTitle
	}
	id := top.ID
	match.CatalogID = &id
	if year, ok := parseAirYear(top.FirstAirDate); ok {
		match.Year = &year
	}
	e.cacheStore(ctx, name, match)
	return match
}

func (e *Enricher) cacheLookup(ctx context.Context, name string) (Match, bool) {
	if e.cache == nil {
		return Match{}, false
	}
	match, ok, err := e.cache.Get(ctx, name)
	if err != nil {
		e.logger.Debug("catalog cache read failed", logging.String("query", name), logging.Error(err))
		return Match{}, false
	}
	return match, ok
}

func (e *Enricher) cacheStore(ctx context.Context, name string, match Match) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Put(ctx, name, match); err != nil {
		e.logger.Debug("catalog cache write failed", logging.String("query", name), logging.Error(err))
	}
}

// parseAirYear extracts the 4-digit year prefix of a first_air_date value.
func parseAirYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	head, _, _ := strings.Cut(date, "-")
	if len(head) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return year, true
}

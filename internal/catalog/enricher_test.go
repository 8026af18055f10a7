package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"aniharvest/internal/catalog"
)

type stubSearcher struct {
	resp  *catalog.Response
	err   error
	calls int
}

func (s *stubSearcher) SearchTV(_ context.Context, _ string) (*catalog.Response, error) {
	s.calls++
	return s.resp, s.err
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		token string
		want  string
	}{
		{"some-show-12?", "some show"},
		{"one-punch-man?", "one punch man?"},
		{"solo?", "solo?"},
		{"-3?", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := catalog.NormalizeName(tc.token); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.token, got, tc.want)
		}
	}
}

func TestEnrichEmptyToken(t *testing.T) {
	searcher := &stubSearcher{}
	enricher := catalog.NewEnricher(searcher)

	match := enricher.Enrich(context.Background(), "")
	if match.DisplayTitle != "Unknown Anime" {
		t.Fatalf("unexpected title %q", match.DisplayTitle)
	}
	if match.CatalogID != nil || match.Year != nil {
		t.Fatalf("expected absent catalog id and year: %#v", match)
	}
	if searcher.calls != 0 {
		t.Fatalf("expected no oracle call for empty token, got %d", searcher.calls)
	}
}

func TestEnrichMatchFound(t *testing.T) {
	searcher := &stubSearcher{resp: &catalog.Response{Results: []catalog.Result{
		{ID: 456, Name: "Demon Hunter", FirstAirDate: "2019-04-06"},
		{ID: 999, Name: "Ignored Second Result"},
	}}}
	enricher := catalog.NewEnricher(searcher)

	match := enricher.Enrich(context.Background(), "demon-hunter-4?")
	if match.CatalogID == nil || *match.CatalogID != 456 {
		t.Fatalf("unexpected catalog id: %#v", match.CatalogID)
	}
	if match.Year == nil || *match.Year != 2019 {
		t.Fatalf("unexpected year: %#v", match.Year)
	}
	if match.DisplayTitle != "Demon Hunter" {
		t.Fatalf("unexpected title %q", match.DisplayTitle)
	}
}

func TestEnrichNoResults(t *testing.T) {
	searcher := &stubSearcher{resp: &catalog.Response{}}
	enricher := catalog.NewEnricher(searcher)

	match := enricher.Enrich(context.Background(), "obscure-show-1?")
	if match.CatalogID != nil || match.Year != nil {
		t.Fatalf("expected degraded match: %#v", match)
	}
	if match.DisplayTitle != "Obscure Show" {
		t.Fatalf("unexpected title %q", match.DisplayTitle)
	}
}

func TestEnrichOracleError(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("connection refused")}
	enricher := catalog.NewEnricher(searcher)

	match := enricher.Enrich(context.Background(), "flaky-show-2?")
	if match.CatalogID != nil || match.Year != nil {
		t.Fatalf("expected degraded match: %#v", match)
	}
	if match.DisplayTitle != "Flaky Show" {
		t.Fatalf("unexpected title %q", match.DisplayTitle)
	}
}

func TestEnrichUnparsableAirDate(t *testing.T) {
	searcher := &stubSearcher{resp: &catalog.Response{Results: []catalog.Result{
		{ID: 7, Name: "No Date Show", FirstAirDate: "unknown"},
	}}}
	enricher := catalog.NewEnricher(searcher)

	match := enricher.Enrich(context.Background(), "no-date-show-1?")
	if match.CatalogID == nil || *match.CatalogID != 7 {
		t.Fatalf("unexpected catalog id: %#v", match.CatalogID)
	}
	if match.Year != nil {
		t.Fatalf("expected absent year, got %d", *match.Year)
	}
}

func TestEnrichUsesCache(t *testing.T) {
	cache, err := catalog.OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	searcher := &stubSearcher{resp: &catalog.Response{Results: []catalog.Result{
		{ID: 11, Name: "Cached Show", FirstAirDate: "2020-01-01"},
	}}}
	enricher := catalog.NewEnricher(searcher, catalog.WithCache(cache))

	first := enricher.Enrich(context.Background(), "cached-show-1?")
	second := enricher.Enrich(context.Background(), "cached-show-1?")
	if searcher.calls != 1 {
		t.Fatalf("expected a single oracle call, got %d", searcher.calls)
	}
	if first.DisplayTitle != second.DisplayTitle || *first.CatalogID != *second.CatalogID {
		t.Fatalf("cache returned a different match: %#v vs %#v", first, second)
	}
}

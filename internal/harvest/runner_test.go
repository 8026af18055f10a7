package harvest_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"aniharvest/internal/catalog"
	"aniharvest/internal/harvest"
	"aniharvest/internal/listing"
)

type fakeFetcher struct {
	results map[int]listing.RangeResult
	errs    map[int]error
}

func (f *fakeFetcher) Fetch(_ context.Context, id int) (listing.RangeResult, error) {
	if err, ok := f.errs[id]; ok {
		return listing.RangeResult{}, err
	}
	if result, ok := f.results[id]; ok {
		return result, nil
	}
	return listing.RangeResult{}, listing.ErrNoEpisodeItems
}

func (f *fakeFetcher) URL(id int) string {
	return fmt.Sprintf("https://example.test/list/%d", id)
}

type fakeEnricher struct{}

func (fakeEnricher) Enrich(_ context.Context, nameToken string) catalog.Match {
	return catalog.Match{DisplayTitle: "Title For " + nameToken}
}

func TestRunAccountsForEveryIdentifier(t *testing.T) {
	fetcher := &fakeFetcher{
		results: map[int]listing.RangeResult{
			10: {FirstEpisode: 1, LastEpisode: 12, NameToken: "show-a-100?"},
			12: {FirstEpisode: 3, LastEpisode: 3, NameToken: "show-b-200?"},
			13: {FirstEpisode: 5, LastEpisode: 7, NameToken: "show-c-300?"},
		},
		errs: map[int]error{11: listing.ErrHTTPStatus},
	}

	runner, err := harvest.NewRunner(fetcher, fakeEnricher{}, harvest.Options{
		FirstID:       10,
		LastID:        14,
		FetchWorkers:  2,
		EnrichWorkers: 2,
	}, nil)
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Summary.Attempted != 5 {
		t.Fatalf("attempted = %d, want 5", result.Summary.Attempted)
	}
	if len(result.Records) != 3 || result.Failures.Len() != 2 {
		t.Fatalf("records/failures = %d/%d, want 3/2", len(result.Records), result.Failures.Len())
	}
	if got := result.Summary.Succeeded + result.Summary.Failed; got != result.Summary.Attempted {
		t.Fatalf("succeeded+failed = %d, want %d", got, result.Summary.Attempted)
	}

	for i, record := range result.Records {
		if record.SerialNo != i+1 {
			t.Fatalf("record %d has serial_no %d", i, record.SerialNo)
		}
	}

	first := result.Records[0]
	if first.SourceID != 10 || first.Episodes != "1-12" || first.EpisodeOffset != 0 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Title != "Title For show-a-100?" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if first.ExternalID != nil {
		t.Fatalf("external id must stay unset, got %v", *first.ExternalID)
	}

	second := result.Records[1]
	if second.SourceID != 12 || second.Episodes != "3" || second.EpisodeOffset != 2 {
		t.Fatalf("unexpected second record: %+v", second)
	}
	if !second.IsSingleEpisode() {
		t.Fatal("expected single-episode record")
	}

	urls := result.Failures.URLs()
	seen := map[string]bool{}
	for _, url := range urls {
		seen[url] = true
	}
	if !seen["https://example.test/list/11"] || !seen["https://example.test/list/14"] {
		t.Fatalf("unexpected failure urls: %v", urls)
	}

	if result.Summary.SingleEpisode != 1 || result.Summary.MultiEpisode != 2 {
		t.Fatalf("single/multi = %d/%d, want 1/2",
			result.Summary.SingleEpisode, result.Summary.MultiEpisode)
	}
}

func TestRunSerialNumbersSpanBatches(t *testing.T) {
	results := map[int]listing.RangeResult{}
	for id := 1; id <= 7; id++ {
		results[id] = listing.RangeResult{FirstEpisode: 1, LastEpisode: id, NameToken: fmt.Sprintf("show-%d?", id)}
	}
	fetcher := &fakeFetcher{results: results}

	runner, err := harvest.NewRunner(fetcher, fakeEnricher{}, harvest.Options{
		FirstID:       1,
		LastID:        7,
		FetchWorkers:  3,
		EnrichWorkers: 2,
	}, nil)
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Records) != 7 {
		t.Fatalf("records = %d, want 7", len(result.Records))
	}
	for i, record := range result.Records {
		if record.SerialNo != i+1 {
			t.Fatalf("record %d has serial_no %d", i, record.SerialNo)
		}
		if record.SourceID != i+1 {
			t.Fatalf("record %d out of identifier order: source id %d", i, record.SourceID)
		}
	}
}

func TestRunProgressCallback(t *testing.T) {
	fetcher := &fakeFetcher{results: map[int]listing.RangeResult{
		1: {FirstEpisode: 1, LastEpisode: 1, NameToken: "a?"},
	}}

	var updates []int
	runner, err := harvest.NewRunner(fetcher, fakeEnricher{}, harvest.Options{
		FirstID:       1,
		LastID:        5,
		FetchWorkers:  2,
		EnrichWorkers: 1,
		Progress:      func(completed int) { updates = append(updates, completed) },
	}, nil)
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	total := 0
	for _, n := range updates {
		total += n
	}
	if total != 5 {
		t.Fatalf("progress total = %d from %v, want 5", total, updates)
	}
}

type blockingEnricher struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingEnricher) Enrich(_ context.Context, nameToken string) catalog.Match {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return catalog.Match{DisplayTitle: "Title For " + nameToken}
}

func TestRunRecordsFailureWhenShutdownPreemptsEnrichment(t *testing.T) {
	fetcher := &fakeFetcher{results: map[int]listing.RangeResult{
		1: {FirstEpisode: 1, LastEpisode: 12, NameToken: "show-a-100?"},
		2: {FirstEpisode: 1, LastEpisode: 3, NameToken: "show-b-200?"},
	}}
	enricher := &blockingEnricher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		// The single enrichment slot is held by the first identifier; cancel
		// while the second is still waiting for it, then let the held
		// enrichment finish.
		<-enricher.started
		cancel()
		time.Sleep(50 * time.Millisecond)
		close(enricher.release)
	}()

	runner, err := harvest.NewRunner(fetcher, enricher, harvest.Options{
		FirstID:       1,
		LastID:        2,
		FetchWorkers:  2,
		EnrichWorkers: 1,
	}, nil)
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Summary.Attempted != 2 {
		t.Fatalf("attempted = %d, want 2", result.Summary.Attempted)
	}
	if len(result.Records) != 1 || result.Records[0].SourceID != 1 {
		t.Fatalf("expected only identifier 1 to produce a record, got %+v", result.Records)
	}
	urls := result.Failures.URLs()
	if len(urls) != 1 || urls[0] != "https://example.test/list/2" {
		t.Fatalf("expected identifier 2 recorded as failed, got %v", urls)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	fetcher := &fakeFetcher{results: map[int]listing.RangeResult{}}
	runner, err := harvest.NewRunner(fetcher, fakeEnricher{}, harvest.Options{
		FirstID:      1,
		LastID:       100,
		FetchWorkers: 5,
	}, nil)
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.Run(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if result.Summary.Attempted != 0 {
		t.Fatalf("attempted = %d, want 0", result.Summary.Attempted)
	}
}

func TestNewRunnerRejectsInvertedRange(t *testing.T) {
	fetcher := &fakeFetcher{}
	if _, err := harvest.NewRunner(fetcher, fakeEnricher{}, harvest.Options{FirstID: 9, LastID: 3}, nil); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"aniharvest/internal/catalog"
	"aniharvest/internal/listing"
	"aniharvest/internal/logging"
)

// Fetcher retrieves one episode listing per identifier. URL must be
// deterministic for an identifier so failures can be recorded by it.
type Fetcher interface {
	Fetch(ctx context.Context, id int) (listing.RangeResult, error)
	URL(id int) string
}

// Enricher resolves a name token to catalog metadata. Implementations must be
// total: a lookup problem degrades the match, it never returns an error.
type Enricher interface {
	Enrich(ctx context.Context, nameToken string) catalog.Match
}

// Options controls one sweep run.
type Options struct {
	FirstID       int
	LastID        int
	FetchWorkers  int
	EnrichWorkers int
	BatchPause    time.Duration
	// Progress, when set, is called after each batch with the number of
	// identifiers completed in that batch.
	Progress func(completed int)
}

// Result bundles the outputs of a sweep run. Records and Failures together
// account for every attempted identifier.
type Result struct {
	Records  []SeriesRecord
	Failures *FailureSet
	Summary  Summary
}

// Runner sweeps an inclusive identifier range in sequential batches.
type Runner struct {
	fetcher  Fetcher
	enricher Enricher
	opts     Options
	logger   *slog.Logger
	runID    string
}

// NewRunner validates options and builds a runner. Each runner carries a
// unique run identifier that tags all of its log output.
func NewRunner(fetcher Fetcher, enricher Enricher, opts Options, logger *slog.Logger) (*Runner, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher required")
	}
	if enricher == nil {
		return nil, errors.New("enricher required")
	}
	if opts.FirstID > opts.LastID {
		return nil, fmt.Errorf("first identifier %d exceeds last %d", opts.FirstID, opts.LastID)
	}
	if opts.FetchWorkers <= 0 {
		opts.FetchWorkers = 1
	}
	if opts.EnrichWorkers <= 0 {
		opts.EnrichWorkers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	runID := uuid.NewString()
	return &Runner{
		fetcher:  fetcher,
		enricher: enricher,
		opts:     opts,
		logger:   logger.With(logging.String(logging.FieldRunID, runID)),
		runID:    runID,
	}, nil
}

// RunID returns the unique identifier of this sweep.
func (r *Runner) RunID() string {
	return r.runID
}

// Run sweeps the configured range. Every identifier in it ends up either as
// exactly one record or exactly one recorded failure URL; on context
// cancellation the remaining identifiers are left unattempted and the partial
// result is returned alongside the context error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	failures := &FailureSet{}
	var records []SeriesRecord
	attempted := 0

	total := r.opts.LastID - r.opts.FirstID + 1
	r.logger.Info("sweep started",
		logging.Int("first_id", r.opts.FirstID),
		logging.Int("last_id", r.opts.LastID),
		logging.Int("total", total),
		logging.Int("fetch_workers", r.opts.FetchWorkers),
		logging.Int("enrich_workers", r.opts.EnrichWorkers))

	for batchStart := r.opts.FirstID; batchStart <= r.opts.LastID; batchStart += r.opts.FetchWorkers {
		if err := ctx.Err(); err != nil {
			return r.finish(records, failures, attempted, started), err
		}

		batchEnd := batchStart + r.opts.FetchWorkers - 1
		if batchEnd > r.opts.LastID {
			batchEnd = r.opts.LastID
		}

		outcomes := r.fetchBatch(ctx, batchStart, batchEnd)
		batchRecords := r.enrichBatch(ctx, outcomes, failures)
		for _, record := range batchRecords {
			record.SerialNo = len(records) + 1
			records = append(records, record)
		}
		attempted += batchEnd - batchStart + 1

		if r.opts.Progress != nil {
			r.opts.Progress(batchEnd - batchStart + 1)
		}

		if r.opts.BatchPause > 0 && batchEnd < r.opts.LastID {
			select {
			case <-ctx.Done():
				return r.finish(records, failures, attempted, started), ctx.Err()
			case <-time.After(r.opts.BatchPause):
			}
		}
	}

	return r.finish(records, failures, attempted, started), nil
}

func (r *Runner) finish(records []SeriesRecord, failures *FailureSet, attempted int, started time.Time) Result {
	summary := summarize(records, failures, attempted, time.Since(started))
	r.logger.Info("sweep finished",
		logging.Int("attempted", summary.Attempted),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))
	return Result{Records: records, Failures: failures, Summary: summary}
}

type fetchOutcome struct {
	id     int
	result listing.RangeResult
	err    error
}

// fetchBatch fetches one inclusive identifier batch concurrently, returning
// outcomes in identifier order.
func (r *Runner) fetchBatch(ctx context.Context, first, last int) []fetchOutcome {
	outcomes := make([]fetchOutcome, last-first+1)

	var wg sync.WaitGroup
	for id := first; id <= last; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			result, err := r.fetcher.Fetch(ctx, id)
			outcomes[id-first] = fetchOutcome{id: id, result: result, err: err}
		}(id)
	}
	wg.Wait()

	return outcomes
}

// enrichBatch enriches the successful outcomes of one batch with a bounded
// worker pool and records every fetch failure. Returned records are in
// identifier order with SerialNo unset.
func (r *Runner) enrichBatch(ctx context.Context, outcomes []fetchOutcome, failures *FailureSet) []SeriesRecord {
	slots := make(chan struct{}, r.opts.EnrichWorkers)
	results := make([]*SeriesRecord, len(outcomes))

	var wg sync.WaitGroup
	for i, outcome := range outcomes {
		if outcome.err != nil {
			r.logger.Debug("listing fetch failed",
				logging.Int(logging.FieldIdentifier, outcome.id),
				logging.Error(outcome.err))
			failures.Add(r.fetcher.URL(outcome.id))
			continue
		}

		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			// No enrichment slot before shutdown; the identifier still has
			// to be accounted for.
			failures.Add(r.fetcher.URL(outcome.id))
			continue
		}

		wg.Add(1)
		go func(i int, outcome fetchOutcome) {
			defer wg.Done()
			defer func() { <-slots }()

			match := r.enricher.Enrich(ctx, outcome.result.NameToken)
			results[i] = &SeriesRecord{
				Name:          outcome.result.NameToken,
				Title:         match.DisplayTitle,
				CatalogID:     match.CatalogID,
				Year:          match.Year,
				Episodes:      FormatEpisodes(outcome.result.FirstEpisode, outcome.result.LastEpisode),
				EpisodeOffset: outcome.result.FirstEpisode - 1,
				SourceID:      outcome.id,
			}
		}(i, outcome)
	}
	wg.Wait()

	records := make([]SeriesRecord, 0, len(outcomes))
	for _, record := range results {
		if record != nil {
			records = append(records, *record)
		}
	}
	return records
}

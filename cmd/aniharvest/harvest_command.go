package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"aniharvest/internal/catalog"
	"aniharvest/internal/config"
	"aniharvest/internal/harvest"
	"aniharvest/internal/listing"
	"aniharvest/internal/logging"
	"aniharvest/internal/notifications"
	"aniharvest/internal/sink"
)

func newHarvestCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		firstID       int
		lastID        int
		fetchWorkers  int
		enrichWorkers int
		showSamples   int
		noProgress    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep the identifier range and write the series dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			opts := harvest.Options{
				FirstID:       cfg.Source.FirstID,
				LastID:        cfg.Source.LastID,
				FetchWorkers:  cfg.Source.FetchWorkers,
				EnrichWorkers: cfg.TMDB.Workers,
				BatchPause:    time.Duration(cfg.Source.BatchPauseMS) * time.Millisecond,
			}
			if cmd.Flags().Changed("first") {
				opts.FirstID = firstID
			}
			if cmd.Flags().Changed("last") {
				opts.LastID = lastID
			}
			if cmd.Flags().Changed("fetch-workers") {
				opts.FetchWorkers = fetchWorkers
			}
			if cmd.Flags().Changed("enrich-workers") {
				opts.EnrichWorkers = enrichWorkers
			}
			if opts.FirstID > opts.LastID {
				return fmt.Errorf("first identifier %d exceeds last %d", opts.FirstID, opts.LastID)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runHarvest(ctx, cmd, cfg, opts, showSamples, noProgress)
		},
	}

	cmd.Flags().IntVar(&firstID, "first", 0, "First identifier to sweep (overrides config)")
	cmd.Flags().IntVar(&lastID, "last", 0, "Last identifier to sweep (overrides config)")
	cmd.Flags().IntVar(&fetchWorkers, "fetch-workers", 0, "Concurrent listing fetches per batch (overrides config)")
	cmd.Flags().IntVar(&enrichWorkers, "enrich-workers", 0, "Concurrent catalog lookups per batch (overrides config)")
	cmd.Flags().IntVar(&showSamples, "show-samples", 0, "Print the first N harvested records after the run")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

func runHarvest(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts harvest.Options, showSamples int, noProgress bool) error {
	lock := flock.New(filepath.Join(cfg.Output.Dir, "aniharvest.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another harvest is already running (lock held at %s)", lock.Path())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	fetcher, err := listing.NewClient(cfg.Source.BaseURL, time.Duration(cfg.Source.RequestTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("build listing client: %w", err)
	}

	searcher, err := catalog.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		catalog.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TMDB.RequestTimeout) * time.Second}))
	if err != nil {
		return fmt.Errorf("build catalog client: %w", err)
	}

	enricherOpts := []catalog.EnricherOption{
		catalog.WithLogger(logging.WithComponent(logger, "catalog")),
	}
	if cfg.TMDB.CacheEnabled {
		cache, err := catalog.OpenCache(cfg.TMDB.CachePath)
		if err != nil {
			return fmt.Errorf("open catalog cache: %w", err)
		}
		defer cache.Close()
		enricherOpts = append(enricherOpts, catalog.WithCache(cache))
	}
	enricher := catalog.NewEnricher(searcher, enricherOpts...)

	if bar := newProgressBar(opts, noProgress); bar != nil {
		opts.Progress = func(completed int) {
			_ = bar.Add(completed)
		}
		defer func() {
			_ = bar.Finish()
		}()
	}

	runner, err := harvest.NewRunner(fetcher, enricher, opts, logging.WithComponent(logger, "harvest"))
	if err != nil {
		return err
	}

	notifier := notifications.NewService(cfg)
	if err := notifier.NotifySweepStarted(ctx, opts.FirstID, opts.LastID); err != nil {
		logger.Warn("sweep start notification failed", logging.Error(err))
	}

	result, runErr := runner.Run(ctx)

	// Artifacts and notifications still go out after a cancelled run, so they
	// use a context detached from the cancellation.
	doneCtx := context.WithoutCancel(ctx)

	if err := sink.WriteRecords(cfg.DataPath(), result.Records); err != nil {
		notifyErr(doneCtx, notifier, logger, err, "dataset write")
		return err
	}
	if err := sink.WriteFailures(cfg.FailuresPath(), result.Failures.URLs()); err != nil {
		notifyErr(doneCtx, notifier, logger, err, "failures write")
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSummaryTable(result.Summary))
	if sample := renderSampleTable(result.Records, showSamples); sample != "" {
		fmt.Fprintln(out, sample)
	}
	fmt.Fprintf(out, "Dataset: %s\n", cfg.DataPath())
	if result.Failures.Len() > 0 {
		fmt.Fprintf(out, "Failed URLs: %s\n", cfg.FailuresPath())
	}

	if runErr != nil {
		notifyErr(doneCtx, notifier, logger, runErr, "sweep")
		return runErr
	}
	if err := notifier.NotifySweepCompleted(doneCtx, result.Summary); err != nil {
		logger.Warn("sweep completion notification failed", logging.Error(err))
	}
	return nil
}

func newProgressBar(opts harvest.Options, noProgress bool) *progressbar.ProgressBar {
	if noProgress {
		return nil
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return nil
	}
	total := opts.LastID - opts.FirstID + 1
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("harvesting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer: "=", SaucerPadding: " ", BarStart: "[", BarEnd: "]",
		}),
	)
}

func notifyErr(ctx context.Context, notifier notifications.Service, logger *slog.Logger, cause error, label string) {
	if err := notifier.NotifyError(ctx, cause, label); err != nil {
		logger.Warn("error notification failed", logging.Error(err))
	}
}

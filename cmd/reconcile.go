package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytxrecon/internal/formatter"
	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/reconcile"
	"github.com/desertthunder/ytxrecon/internal/repositories"
	"github.com/desertthunder/ytxrecon/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// ReconcileRun loads the staged snapshot, reconciles it and writes the records.
//
// Flags override the [output] and [reconcile] config sections. With --persist the records
// are stored under a new run and the run is marked completed or failed.
func (r *Runner) ReconcileRun(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	format := r.config.Output.Format
	if cmd.IsSet("format") {
		format = cmd.String("format")
	}
	outputFormat, err := formatter.ParseFormat(format)
	if err != nil {
		return err
	}

	outputPath := r.config.Output.Path
	if cmd.IsSet("output") {
		outputPath = cmd.String("output")
	}
	persist := r.config.Output.Persist || cmd.Bool("persist")

	opts := reconcile.Options{
		Workers:       r.config.Reconcile.Workers,
		PartitionSize: r.config.Reconcile.PartitionSize,
	}
	if cmd.IsSet("workers") {
		opts.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("partition-size") {
		opts.PartitionSize = cmd.Int("partition-size")
	}
	if opts.Workers < 0 || opts.PartitionSize < 0 {
		return fmt.Errorf("%w: workers and partition size must not be negative", shared.ErrInvalidFlag)
	}

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := repositories.NewSnapshotRepository(db).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	reconciler, err := reconcile.NewReconciler(snapshot, opts)
	if err != nil {
		return err
	}

	logger := r.logger
	runs := repositories.NewRunRepository(db)
	var run *models.Run
	if persist {
		if run, err = runs.Create(ctx); err != nil {
			return err
		}
		logger = shared.WithLogger(r.logger, "run_id", run.ID)
	}

	logger.Info("reconciling snapshot", "search_logs", len(snapshot.SearchLog), "workers", opts.Workers)

	progress := make(chan reconcile.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		logProgress(logger, progress)
	}()

	result, err := reconciler.Run(ctx, progress)
	close(progress)
	<-done

	if err == nil && run != nil {
		err = repositories.NewRecordRepository(db).SaveAll(ctx, run.ID, result.Records)
	}
	if err != nil {
		if run != nil {
			if failErr := runs.Fail(context.WithoutCancel(ctx), run.ID, err); failErr != nil {
				logger.Error("failed to record run failure", "error", failErr)
			}
		}
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if run != nil {
		if err := runs.Complete(ctx, run.ID, runCounts(result.Stats)); err != nil {
			return err
		}
	}

	if outputPath == "" {
		data, err := formatter.Export(outputFormat, result.Records)
		if err != nil {
			return err
		}
		if err := r.writeBytes(data); err != nil {
			return err
		}
	} else if err := formatter.WriteExport(outputFormat, result.Records, outputPath); err != nil {
		return err
	}

	s := result.Stats
	logger.Info("reconciliation complete",
		"reconciled", s.Reconciled,
		"dropped", s.Dropped(),
		"unmatched", s.Unmatched,
		"missing_catalog", s.MissingCatalog,
		"null_percentage", s.NullPercentage,
	)
	if s.UnknownPlaylist+s.UnknownSearchType+s.MissingVideo > 0 {
		logger.Warn("rows dropped by lookups",
			"unknown_playlist", s.UnknownPlaylist,
			"unknown_search_type", s.UnknownSearchType,
			"missing_video", s.MissingVideo,
		)
	}
	if outputPath != "" {
		logger.Info("records written", "path", outputPath, "format", outputFormat)
	}

	return nil
}

// ReconcileRuns lists previous runs, newest first.
func (r *Runner) ReconcileRuns(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := repositories.NewRunRepository(db).List(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if runs == nil {
			runs = []*models.Run{}
		}
		return r.writeJSON(runs, true)
	}

	return r.writeBytes(formatter.ExportRuns(runs))
}

// ReconcileRecords prints the persisted records of --run-id.
func (r *Runner) ReconcileRecords(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	format := r.config.Output.Format
	if cmd.IsSet("format") {
		format = cmd.String("format")
	}
	outputFormat, err := formatter.ParseFormat(format)
	if err != nil {
		return err
	}

	runID := cmd.String("run-id")
	if runID == "" {
		return fmt.Errorf("%w: --run-id", shared.ErrMissingArgument)
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := repositories.NewRunRepository(db).Get(ctx, runID)
	if err != nil {
		return err
	}

	records, err := repositories.NewRecordRepository(db).ListByRun(ctx, run.ID)
	if err != nil {
		return err
	}

	data, err := formatter.Export(outputFormat, records)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// logProgress logs batch progress until progress is closed. Partition updates are
// logged at most once per second.
func logProgress(logger *log.Logger, progress <-chan reconcile.ProgressUpdate) {
	partitions := rate.Sometimes{Interval: time.Second}
	for u := range progress {
		if u.Phase == reconcile.ReconcilePartitions && u.Step < u.Total {
			partitions.Do(func() {
				logger.Info(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
			})
			continue
		}
		logger.Debug(u.Message, "phase", u.Phase)
	}
}

func runCounts(s reconcile.Stats) models.RunCounts {
	return models.RunCounts{
		SearchLogs:     s.SearchLogs,
		Enriched:       s.Enriched,
		Reconciled:     s.Reconciled,
		Dropped:        s.Dropped(),
		MissingCatalog: s.MissingCatalog,
		NullPercentage: s.NullPercentage,
	}
}

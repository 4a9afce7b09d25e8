package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/config"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/closer"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repair"
	db "github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/scheduler"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/syncer"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

func requireSyncTarget(cfg *config.Gate) error {
	if cfg.BackendSyncURL == "" {
		return errors.New("BACKEND_SYNC_URL is not set")
	}
	if cfg.GateAPIKey == "" {
		return errors.New("GATE_API_KEY is not set")
	}
	return nil
}

// onSync drains the outbox, either once or on the configured interval until
// interrupted.
func onSync(ctx context.Context, cfg *config.Gate, cf *cliConf, logger *zap.Logger) error {
	if err := requireSyncTarget(cfg); err != nil {
		return err
	}

	batch := cfg.SyncBatchSize
	if cf.batchSize > 0 {
		batch = cf.batchSize
	}
	interval := cfg.SyncInterval
	if cf.sleep > 0 {
		interval = time.Duration(cf.sleep) * time.Second
	}

	pool, err := openPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	client := syncer.NewClient(cfg.BackendSyncURL, cfg.GateAPIKey, cfg.SyncTimeout)
	worker, err := syncer.NewWorker(pool, client, logger, int32(batch), interval)
	if err != nil {
		return err
	}

	if cf.once {
		return worker.RunOnce(ctx)
	}
	if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// onAutoExit closes out entries that have sat ENTERED past the threshold.
func onAutoExit(ctx context.Context, cfg *config.Gate, cf *cliConf, logger *zap.Logger) error {
	hours := cf.hours
	if hours <= 0 {
		hours = cfg.AutoExitHours
	}

	pool, err := openPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	report, err := closer.New(pool, db.New(pool), logger).Run(ctx, hours, cf.dryRun)
	if err != nil {
		return err
	}

	if report.Found == 0 {
		fmt.Println("auto_exit: No stale entries found.")
		return nil
	}
	fmt.Printf("auto_exit: Found %d entries older than %dh\n", report.Found, hours)
	if cf.dryRun {
		fmt.Println("auto_exit: DRY RUN - no changes made")
		for _, c := range report.Candidates {
			fmt.Printf("  Would close: %s (roll=%s)\n", c.EntryID, c.Roll)
		}
		if rest := report.Found - len(report.Candidates); rest > 0 {
			fmt.Printf("  ... and %d more\n", rest)
		}
		return nil
	}
	fmt.Printf("auto_exit: Done. Created %d AUTO_EXIT logs, expired %d entries.\n",
		report.ExitsCreated, report.EntriesExpired)
	return nil
}

// onRepair replays the whole local log through the sync endpoint. Safe to
// run any time: the backend deduplicates by event id and resolves conflicts
// by scan time.
func onRepair(ctx context.Context, cfg *config.Gate, cf *cliConf, logger *zap.Logger) error {
	if err := requireSyncTarget(cfg); err != nil {
		return err
	}

	f := repair.Filter{Roll: cf.roll}
	if cf.since != "" {
		t, err := wire.ParseISO(cf.since)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		f.Since = &t
	}
	if cf.until != "" {
		t, err := wire.ParseISO(cf.until)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		f.Until = &t
	}

	batch := cfg.SyncBatchSize
	if cf.batchSize > 0 {
		batch = cf.batchSize
	}

	pool, err := openPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	client := syncer.NewClient(cfg.BackendSyncURL, cfg.GateAPIKey, cfg.SyncTimeout)
	report, err := repair.New(db.New(pool), client, logger, int32(batch)).Run(ctx, f)
	if err != nil {
		return err
	}

	fmt.Printf("repair: entries sent=%d acked=%d\n", report.EntriesSent, report.EntriesAcked)
	fmt.Printf("repair: exits sent=%d acked=%d\n", report.ExitsSent, report.ExitsAcked)
	if report.Rejected > 0 {
		fmt.Printf("repair: rejected=%d\n", report.Rejected)
	}
	fmt.Println("repair: done")
	return nil
}

// onRun is the long-lived gate process: the sync loop in the foreground and
// the cron jobs (nightly auto-exit, hourly backlog report) alongside.
func onRun(ctx context.Context, cfg *config.Gate, logger *zap.Logger) error {
	if err := requireSyncTarget(cfg); err != nil {
		return err
	}

	pool, err := openPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	querier := db.New(pool)
	client := syncer.NewClient(cfg.BackendSyncURL, cfg.GateAPIKey, cfg.SyncTimeout)
	worker, err := syncer.NewWorker(pool, client, logger, int32(cfg.SyncBatchSize), cfg.SyncInterval)
	if err != nil {
		return err
	}

	sched := scheduler.NewCronScheduler(closer.New(pool, querier, logger), querier, logger,
		cfg.AutoExitSchedule, cfg.AutoExitHours)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	logger.Info("gate daemon started",
		zap.String("backend", cfg.BackendSyncURL),
		zap.Int("batch_size", cfg.SyncBatchSize),
		zap.Duration("interval", cfg.SyncInterval),
	)

	if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("gate daemon shutting down")
	return nil
}

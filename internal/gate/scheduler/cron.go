// Package scheduler runs the gate's periodic jobs when the node runs in
// long-lived mode: the nightly auto-exit close and an hourly outbox backlog
// report. Both jobs also exist as one-shot CLI commands for manual runs.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/closer"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
)

// DefaultAutoExitSchedule fires shortly after midnight, once the entry
// tokens issued the previous morning are past their TTL.
const DefaultAutoExitSchedule = "0 5 0 * * *"

// CronScheduler wraps robfig/cron around the gate's background jobs.
type CronScheduler struct {
	cron     *cron.Cron
	closer   *closer.Closer
	querier  db.Querier
	logger   *zap.Logger
	schedule string
	hours    int
}

func NewCronScheduler(cl *closer.Closer, querier db.Querier, logger *zap.Logger, schedule string, hours int) *CronScheduler {
	if schedule == "" {
		schedule = DefaultAutoExitSchedule
	}
	return &CronScheduler{
		cron:     cron.New(cron.WithSeconds()),
		closer:   cl,
		querier:  querier,
		logger:   logger,
		schedule: schedule,
		hours:    hours,
	}
}

// Start registers the jobs and starts the scheduler. Call Stop() to
// gracefully shut down.
func (s *CronScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runAutoExit); err != nil {
		return fmt.Errorf("failed to schedule auto exit: %w", err)
	}
	if _, err := s.cron.AddFunc("@hourly", s.reportBacklog); err != nil {
		return fmt.Errorf("failed to schedule backlog report: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		zap.String("auto_exit_schedule", s.schedule),
		zap.Int("auto_exit_hours", s.hours),
	)
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *CronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("cron scheduler stopped")
}

func (s *CronScheduler) runAutoExit() {
	report, err := s.closer.Run(context.Background(), s.hours, false)
	if err != nil {
		s.logger.Error("auto exit run failed", zap.Error(err))
		return
	}
	s.logger.Info("auto exit run finished",
		zap.Int("found", report.Found),
		zap.Int("exits_created", report.ExitsCreated),
		zap.Int("entries_expired", report.EntriesExpired),
	)
}

// reportBacklog keeps an eye on rows the sync worker has not shipped yet. A
// growing number on a gate that thinks it is healthy means the backend link
// is quietly failing.
func (s *CronScheduler) reportBacklog() {
	count, err := s.querier.CountUnsentOutbox(context.Background())
	if err != nil {
		s.logger.Error("failed to count outbox backlog", zap.Error(err))
		return
	}
	s.logger.Info("outbox backlog", zap.Int64("unsent", count))
}

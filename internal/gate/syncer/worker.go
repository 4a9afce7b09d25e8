// Package syncer drains the gate outbox to the backend. Rows are claimed in
// a short transaction, shipped over HTTP with the claim locks already
// released, and marked in a second transaction according to the backend's
// ack report. A batch that ships twice is harmless: the backend ingests
// events idempotently by event id.
package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

const (
	// defaultBatchSize is used when no batch size is configured.
	defaultBatchSize = 200
	// maxBatchSize matches the server's per-request event cap; a larger
	// claim would only bounce off the 413.
	maxBatchSize = 500
	// maxRetryDelay caps the backoff between delivery attempts.
	maxRetryDelay = 300 * time.Second
	// maxErrorLen bounds what is kept of a delivery error in last_error.
	maxErrorLen = 2000
)

// Worker ships outbox batches on a fixed interval.
type Worker struct {
	pool     *pgxpool.Pool
	client   *Client
	logger   *zap.Logger
	batch    int32
	interval time.Duration
	now      func() time.Time
	jitter   func() float64

	shipped  metric.Int64Counter
	failures metric.Int64Counter
}

func NewWorker(pool *pgxpool.Pool, client *Client, logger *zap.Logger, batchSize int32, interval time.Duration) (*Worker, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}
	meter := otel.Meter("pale-tsg-v2/gate/syncer")
	shipped, err := meter.Int64Counter("outbox_events_shipped_total",
		metric.WithDescription("Events acknowledged by the backend."))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	failures, err := meter.Int64Counter("outbox_sync_failures_total",
		metric.WithDescription("Events whose delivery failed and was rescheduled."))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	return &Worker{
		pool:     pool,
		client:   client,
		logger:   logger,
		batch:    batchSize,
		interval: interval,
		now:      time.Now,
		jitter:   rand.Float64,
		shipped:  shipped,
		failures: failures,
	}, nil
}

// Run syncs immediately and then on every interval tick until ctx is
// cancelled. Tick failures are logged and left for the next tick; the
// per-row retry schedule decides when each event becomes due again.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("sync tick failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce processes a single batch. A delivery failure is absorbed here:
// the claimed rows get a retry schedule and RunOnce returns nil. Only
// store-side failures propagate.
func (w *Worker) RunOnce(ctx context.Context) error {
	rows, err := w.claim(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	events, err := buildEvents(rows)
	if err != nil {
		return err
	}

	resp, err := w.client.PostEvents(ctx, events)
	if err != nil {
		if rerr := w.scheduleRetries(ctx, rows, err); rerr != nil {
			return rerr
		}
		w.failures.Add(ctx, int64(len(rows)))
		w.logger.Warn("sync failed; scheduled retry",
			zap.Int("events", len(rows)),
			zap.Error(err),
		)
		return nil
	}

	acked, rejected, err := w.applyResponse(ctx, rows, resp)
	if err != nil {
		return err
	}
	w.shipped.Add(ctx, int64(acked))
	w.logger.Info("synced batch",
		zap.Int("batch", len(rows)),
		zap.Int("acked", acked),
		zap.Int("rejected", rejected),
	)
	return nil
}

// claim selects the due rows and commits immediately. SKIP LOCKED keeps
// concurrent workers off each other's batch during the select; after commit
// the rows are only protected by the idempotent receiver.
func (w *Worker) claim(ctx context.Context) ([]db.OutboxEvent, error) {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := db.New(tx).ClaimOutboxBatch(ctx, w.batch)
	if err != nil {
		return nil, fmt.Errorf("failed to claim outbox batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rows, nil
}

func (w *Worker) applyResponse(ctx context.Context, rows []db.OutboxEvent, resp *wire.SyncResponse) (int, int, error) {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	acked, rejected, err := applyMarks(ctx, db.New(tx), rows, resp)
	if err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return acked, rejected, nil
}

func (w *Worker) scheduleRetries(ctx context.Context, rows []db.OutboxEvent, cause error) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := scheduleRetryMarks(ctx, db.New(tx), rows, cause, w.now().UTC(), w.jitter); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// buildEvents decodes each row's payload and reasserts the row's id and type
// onto it. The outbox row, not the stored payload, is authoritative for
// identity.
func buildEvents(rows []db.OutboxEvent) ([]wire.Event, error) {
	events := make([]wire.Event, 0, len(rows))
	for _, row := range rows {
		var ev wire.Event
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &ev); err != nil {
				return nil, fmt.Errorf("failed to decode payload for event %s: %w", eventIDString(row.EventID), err)
			}
		}
		ev.EventID = eventIDString(row.EventID)
		ev.Type = wire.EventType(row.EventType)
		events = append(events, ev)
	}
	return events, nil
}

// applyMarks settles the claimed rows against the backend's report. Acked
// rows are done, rejected rows are retired with the reason, and rows the
// report never mentions are left unsent for the next tick.
func applyMarks(ctx context.Context, q db.Querier, rows []db.OutboxEvent, resp *wire.SyncResponse) (int, int, error) {
	claimed := make(map[string]pgtype.UUID, len(rows))
	for _, row := range rows {
		claimed[eventIDString(row.EventID)] = row.EventID
	}

	ackIDs := make([]pgtype.UUID, 0, len(resp.AckedEventIDs))
	for _, id := range resp.AckedEventIDs {
		if uid, ok := claimed[strings.ToLower(id)]; ok {
			ackIDs = append(ackIDs, uid)
		}
	}
	if len(ackIDs) > 0 {
		if err := q.MarkOutboxSent(ctx, ackIDs); err != nil {
			return 0, 0, fmt.Errorf("failed to mark events sent: %w", err)
		}
	}

	rejected := 0
	for _, rej := range resp.Rejected {
		if rej.EventID == nil {
			continue
		}
		uid, ok := claimed[strings.ToLower(*rej.EventID)]
		if !ok {
			continue
		}
		if err := q.MarkOutboxRejected(ctx, db.MarkOutboxRejectedParams{
			EventID:   uid,
			LastError: "rejected: " + rej.Error,
		}); err != nil {
			return 0, 0, fmt.Errorf("failed to mark event rejected: %w", err)
		}
		rejected++
	}
	return len(ackIDs), rejected, nil
}

func scheduleRetryMarks(ctx context.Context, q db.Querier, rows []db.OutboxEvent, cause error, now time.Time, jitter func() float64) error {
	msg := cause.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	for _, row := range rows {
		delay := retryDelay(row.AttemptCount, jitter())
		if err := q.MarkOutboxRetry(ctx, db.MarkOutboxRetryParams{
			EventID:     row.EventID,
			NextRetryAt: pgtype.Timestamptz{Time: now.Add(delay), Valid: true},
			LastError:   msg,
		}); err != nil {
			return fmt.Errorf("failed to schedule retry: %w", err)
		}
	}
	return nil
}

// retryDelay is exponential in the attempt number with a little jitter,
// capped at maxRetryDelay. attempts is the count before this failure.
func retryDelay(attempts int32, jitter float64) time.Duration {
	n := attempts + 1
	if n > 10 {
		n = 10
	}
	secs := math.Exp2(float64(n)) + jitter*2
	if secs > maxRetryDelay.Seconds() {
		secs = maxRetryDelay.Seconds()
	}
	return time.Duration(int(secs)) * time.Second
}

func eventIDString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

// Package repair replays the gate's local log to the backend, bypassing the
// outbox. The receiver ingests idempotently and the newest scan time wins,
// so a full replay over an already-synced backend is harmless. Event ids are
// the row ids: replaying the same row always produces the same event.
package repair

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/syncer"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// Filter narrows the replay. Since and Until bound created_at; Roll limits
// to one person.
type Filter struct {
	Since *time.Time
	Until *time.Time
	Roll  string
}

// Report tallies a finished replay.
type Report struct {
	EntriesSent  int
	EntriesAcked int
	ExitsSent    int
	ExitsAcked   int
	Rejected     int
}

type Runner struct {
	querier db.Querier
	client  *syncer.Client
	logger  *zap.Logger
	batch   int32
	now     func() time.Time
}

func New(querier db.Querier, client *syncer.Client, logger *zap.Logger, batchSize int32) *Runner {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &Runner{
		querier: querier,
		client:  client,
		logger:  logger,
		batch:   batchSize,
		now:     time.Now,
	}
}

// Run replays entry logs, then exit logs, in created_at order.
func (r *Runner) Run(ctx context.Context, f Filter) (*Report, error) {
	report := &Report{}
	if err := r.replayEntries(ctx, f, report); err != nil {
		return nil, err
	}
	if err := r.replayExits(ctx, f, report); err != nil {
		return nil, err
	}
	r.logger.Info("repair done",
		zap.Int("entries_sent", report.EntriesSent),
		zap.Int("exits_sent", report.ExitsSent),
		zap.Int("rejected", report.Rejected),
	)
	return report, nil
}

func (r *Runner) replayEntries(ctx context.Context, f Filter, report *Report) error {
	var offset int32
	for {
		rows, err := r.querier.ListEntryLogs(ctx, db.ListEntryLogsParams{
			Since:  pgTimePtr(f.Since),
			Until:  pgTimePtr(f.Until),
			Roll:   pgText(f.Roll),
			Limit:  r.batch,
			Offset: offset,
		})
		if err != nil {
			return fmt.Errorf("failed to list entry logs: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		events := make([]wire.Event, len(rows))
		for i, row := range rows {
			events[i] = r.entryEvent(row)
		}
		resp, err := r.client.PostEvents(ctx, events)
		if err != nil {
			return fmt.Errorf("failed to replay entries: %w", err)
		}
		report.EntriesSent += len(rows)
		report.EntriesAcked += len(resp.AckedEventIDs)
		r.reportRejections("entries", resp.Rejected, report)
		r.logger.Info("replayed entry batch",
			zap.Int("sent", len(rows)),
			zap.Int("acked", len(resp.AckedEventIDs)),
		)
		offset += int32(len(rows))
	}
}

func (r *Runner) replayExits(ctx context.Context, f Filter, report *Report) error {
	var offset int32
	for {
		rows, err := r.querier.ListExitLogs(ctx, db.ListExitLogsParams{
			Since:  pgTimePtr(f.Since),
			Until:  pgTimePtr(f.Until),
			Roll:   pgText(f.Roll),
			Limit:  r.batch,
			Offset: offset,
		})
		if err != nil {
			return fmt.Errorf("failed to list exit logs: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		events := make([]wire.Event, len(rows))
		for i, row := range rows {
			events[i] = r.exitEvent(row)
		}
		resp, err := r.client.PostEvents(ctx, events)
		if err != nil {
			return fmt.Errorf("failed to replay exits: %w", err)
		}
		report.ExitsSent += len(rows)
		report.ExitsAcked += len(resp.AckedEventIDs)
		r.reportRejections("exits", resp.Rejected, report)
		r.logger.Info("replayed exit batch",
			zap.Int("sent", len(rows)),
			zap.Int("acked", len(resp.AckedEventIDs)),
		)
		offset += int32(len(rows))
	}
}

func (r *Runner) reportRejections(kind string, rejected []wire.RejectedEvent, report *Report) {
	if len(rejected) == 0 {
		return
	}
	report.Rejected += len(rejected)
	first := rejected[0]
	id := "<none>"
	if first.EventID != nil {
		id = *first.EventID
	}
	r.logger.Warn("replay batch had rejections",
		zap.String("kind", kind),
		zap.Int("rejected", len(rejected)),
		zap.String("first_event_id", id),
		zap.String("first_error", first.Error),
	)
}

// entryEvent rebuilds the sync event for a row. Replayed events carry no
// device fields; the backend never stores them anyway.
func (r *Runner) entryEvent(row db.EntryLog) wire.Event {
	return wire.Event{
		EventID:   uuidString(row.ID),
		Type:      wire.EventEntry,
		EntryID:   uuidString(row.ID),
		Roll:      row.Roll,
		ScannedAt: wire.NewISOTime(r.rowTime(row.ScannedAt, row.CreatedAt)),
		Status:    wire.EntryStatus(row.Status),
		EntryFlag: wire.EntryFlag(row.EntryFlag.String),
		Laptop:    textPtr(row.Laptop),
		Extra:     rawList(row.Extra),
	}
}

func (r *Runner) exitEvent(row db.ExitLog) wire.Event {
	return wire.Event{
		EventID:   uuidString(row.ID),
		Type:      wire.EventExit,
		ExitID:    uuidString(row.ID),
		EntryID:   uuidString(row.EntryID),
		Roll:      row.Roll,
		ScannedAt: wire.NewISOTime(r.rowTime(row.ScannedAt, row.CreatedAt)),
		ExitFlag:  wire.ExitFlag(row.ExitFlag),
		Laptop:    textPtr(row.Laptop),
		Extra:     rawList(row.Extra),
	}
}

func (r *Runner) rowTime(scanned, created pgtype.Timestamptz) time.Time {
	switch {
	case scanned.Valid:
		return scanned.Time
	case created.Valid:
		return created.Time
	default:
		return r.now().UTC()
	}
}

func pgTimePtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func uuidString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

func rawList(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`[]`)
	}
	return raw
}

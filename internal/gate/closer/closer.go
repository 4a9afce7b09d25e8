// Package closer implements the midnight auto-exit job. Entries still
// ENTERED after a threshold get an AUTO_EXIT exit row and are expired, and
// both changes are queued for sync. Each entry is closed in its own
// transaction so one bad row cannot hold the rest of the batch hostage.
package closer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// DefaultHours is the age threshold for closing an open entry. The job is
// meant to run shortly after midnight, well clear of the entry token TTL.
const DefaultHours = 20

// Candidate identifies one entry a dry run would close.
type Candidate struct {
	EntryID string
	Roll    string
}

// Report summarises one run.
type Report struct {
	Found          int
	Candidates     []Candidate
	ExitsCreated   int
	EntriesExpired int
}

type Closer struct {
	pool    *pgxpool.Pool
	querier db.Querier
	logger  *zap.Logger
	now     func() time.Time
}

func New(pool *pgxpool.Pool, querier db.Querier, logger *zap.Logger) *Closer {
	return &Closer{pool: pool, querier: querier, logger: logger, now: time.Now}
}

// Run closes every entry older than hours. In dry-run mode nothing is
// written and the report carries a preview of up to ten candidates.
func (c *Closer) Run(ctx context.Context, hours int, dryRun bool) (*Report, error) {
	if hours <= 0 {
		hours = DefaultHours
	}
	ts := c.now().UTC()
	cutoff := ts.Add(-time.Duration(hours) * time.Hour)

	stale, err := c.querier.ListStaleEntered(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list stale entries: %w", err)
	}

	report := &Report{Found: len(stale)}
	if len(stale) == 0 {
		return report, nil
	}

	if dryRun {
		preview := stale
		if len(preview) > 10 {
			preview = preview[:10]
		}
		for _, entry := range preview {
			report.Candidates = append(report.Candidates, Candidate{
				EntryID: uuidString(entry.ID),
				Roll:    entry.Roll,
			})
		}
		return report, nil
	}

	for _, entry := range stale {
		if err := c.closeEntry(ctx, entry, ts); err != nil {
			c.logger.Error("failed to close stale entry",
				zap.String("entry_id", uuidString(entry.ID)),
				zap.Error(err),
			)
			continue
		}
		report.ExitsCreated++
		report.EntriesExpired++
	}

	c.logger.Info("auto exit done",
		zap.Int("found", report.Found),
		zap.Int("exits_created", report.ExitsCreated),
		zap.Int("entries_expired", report.EntriesExpired),
	)
	return report, nil
}

func (c *Closer) closeEntry(ctx context.Context, entry db.EntryLog, ts time.Time) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := closeOne(ctx, db.New(tx), entry, ts); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func closeOne(ctx context.Context, q db.Querier, entry db.EntryLog, ts time.Time) error {
	meta, err := json.Marshal(map[string]any{
		"source":   "midnight_job",
		"closedAt": ts.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to encode device metadata: %w", err)
	}

	newID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate exit ID: %w", err)
	}
	var exitID pgtype.UUID
	if err := exitID.Scan(newID.String()); err != nil {
		return fmt.Errorf("failed to convert exit ID: %w", err)
	}

	exitRow, err := q.CreateExitLog(ctx, db.CreateExitLogParams{
		ID:         exitID,
		Roll:       entry.Roll,
		EntryID:    entry.ID,
		ExitFlag:   string(wire.ExitFlagAuto),
		Laptop:     entry.Laptop,
		Extra:      rawList(entry.Extra),
		DeviceMeta: meta,
		ScannedAt:  pgtype.Timestamptz{Time: ts, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create exit: %w", err)
	}

	if err := queueEvent(ctx, q, wire.Event{
		Type:       wire.EventExit,
		ExitID:     uuidString(exitRow.ID),
		EntryID:    uuidString(entry.ID),
		Roll:       entry.Roll,
		ScannedAt:  wire.NewISOTime(ts),
		ExitFlag:   wire.ExitFlagAuto,
		Laptop:     textPtr(entry.Laptop),
		Extra:      rawList(entry.Extra),
		DeviceMeta: meta,
	}); err != nil {
		return err
	}

	if _, err := q.MarkEntryExpired(ctx, db.MarkEntryExpiredParams{
		ID:        entry.ID,
		ScannedAt: pgtype.Timestamptz{Time: ts, Valid: true},
	}); err != nil {
		return fmt.Errorf("failed to expire entry: %w", err)
	}

	// The expiry notice carries the entry's own fields but no device
	// metadata; the job, not a device, closed it.
	return queueEvent(ctx, q, wire.Event{
		Type:      wire.EventEntryExpiredSeen,
		EntryID:   uuidString(entry.ID),
		Roll:      entry.Roll,
		ScannedAt: wire.NewISOTime(ts),
		Status:    wire.StatusExpired,
		EntryFlag: wire.EntryFlag(entry.EntryFlag.String),
		Laptop:    textPtr(entry.Laptop),
		Extra:     rawList(entry.Extra),
	})
}

func queueEvent(ctx context.Context, q db.Querier, ev wire.Event) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate event ID: %w", err)
	}
	ev.EventID = id.String()

	payload, err := json.Marshal(&ev)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", ev.Type, err)
	}
	var eventID pgtype.UUID
	if err := eventID.Scan(id.String()); err != nil {
		return fmt.Errorf("failed to convert event ID: %w", err)
	}
	if err := q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		EventID:   eventID,
		EventType: string(ev.Type),
		Payload:   payload,
	}); err != nil {
		return fmt.Errorf("failed to queue %s event: %w", ev.Type, err)
	}
	return nil
}

func uuidString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func rawList(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`[]`)
	}
	return raw
}

// Package service implements the backend's application logic: ingesting
// replicated gate events, issuing gate credentials, and aggregating the
// dashboard summary.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// rejectError marks an event the backend refuses permanently. The gate must
// not retry it; the reason travels back in the rejected[] list. Any other
// error from ingest is transient and aborts the whole batch unacked.
type rejectError struct {
	reason string
}

func (e *rejectError) Error() string { return e.reason }

// --- Service Interface ---

type SyncService interface {
	// IngestBatch applies a batch of gate events. Each element is settled
	// independently: acked, rejected with a reason, or (on a transient
	// failure) the batch is abandoned so the gate retries everything that
	// was not yet acked.
	IngestBatch(ctx context.Context, events []json.RawMessage) (*wire.SyncResponse, error)
}

// --- Service Implementation ---

type syncService struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	now    func() time.Time
}

func NewSyncService(pool *pgxpool.Pool, logger *zap.Logger) SyncService {
	return &syncService{pool: pool, logger: logger, now: time.Now}
}

func (s *syncService) IngestBatch(ctx context.Context, events []json.RawMessage) (*wire.SyncResponse, error) {
	resp := &wire.SyncResponse{
		AckedEventIDs: []string{},
		Rejected:      []wire.RejectedEvent{},
	}

	for _, element := range events {
		ev, reject := decodeEvent(element)
		if reject != nil {
			resp.Rejected = append(resp.Rejected, *reject)
			continue
		}

		acked, err := s.ingestOne(ctx, ev)
		if err != nil {
			var re *rejectError
			if errors.As(err, &re) {
				resp.Rejected = append(resp.Rejected, wire.RejectedEvent{
					EventID: eventIDRef(ev.EventID),
					Error:   re.reason,
				})
				continue
			}
			return nil, err
		}
		resp.AckedEventIDs = append(resp.AckedEventIDs, acked)
	}

	resp.ServerTime = s.now().UTC()
	s.logger.Info("ingested gate batch",
		zap.Int("events", len(events)),
		zap.Int("acked", len(resp.AckedEventIDs)),
		zap.Int("rejected", len(resp.Rejected)),
	)
	return resp, nil
}

// decodeEvent turns one raw batch element into a validated event, or the
// rejection to report instead. Validation runs before any database work so a
// malformed event never claims its id in the processed set.
func decodeEvent(element json.RawMessage) (*wire.Event, *wire.RejectedEvent) {
	trimmed := bytes.TrimSpace(element)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &wire.RejectedEvent{Error: "Event must be an object"}
	}
	var ev wire.Event
	if err := json.Unmarshal(trimmed, &ev); err != nil {
		return nil, &wire.RejectedEvent{Error: "Event must be an object"}
	}
	if err := ev.Validate(); err != nil {
		return nil, &wire.RejectedEvent{EventID: eventIDRef(ev.EventID), Error: err.Error()}
	}
	return &ev, nil
}

// ingestOne settles a single event in its own transaction: claim the event
// id, apply the row changes, commit. The returned string is the canonical
// lowercase id to ack.
func (s *syncService) ingestOne(ctx context.Context, ev *wire.Event) (string, error) {
	canonical, err := uuid.Parse(ev.EventID)
	if err != nil {
		return "", fmt.Errorf("failed to parse event id %q: %w", ev.EventID, err)
	}
	acked := canonical.String()

	guardID, err := pgUUID(acked)
	if err != nil {
		return "", err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)
	qtx := db.New(tx)

	if err := qtx.InsertProcessedGateEvent(ctx, db.InsertProcessedGateEventParams{
		EventID:   guardID,
		EventType: string(ev.Type),
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// An earlier request already applied this event. Ack it again;
			// the deferred rollback discards this transaction entirely.
			return acked, nil
		}
		return "", fmt.Errorf("failed to claim event id %s: %w", acked, err)
	}

	if err := applyEvent(ctx, qtx, ev, s.now().UTC()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
			// A constraint violation will fail the same way on every retry,
			// so report it back instead of letting the gate loop on it.
			return "", &rejectError{reason: pgErr.Message}
		}
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return acked, nil
}

// --- Event Application ---

func applyEvent(ctx context.Context, q db.Querier, ev *wire.Event, now time.Time) error {
	switch ev.Type {
	case wire.EventEntry, wire.EventEntryExpiredSeen:
		return applyEntry(ctx, q, ev, now)
	case wire.EventExit:
		return applyExit(ctx, q, ev, now)
	default:
		return &rejectError{reason: fmt.Sprintf("Unknown event type: %s", ev.Type)}
	}
}

func applyEntry(ctx context.Context, q db.Querier, ev *wire.Event, now time.Time) error {
	ts := eventTime(ev.ScannedAt, now)

	status := ev.Status
	if status == "" {
		status = wire.StatusEntered
		if ev.Type == wire.EventEntryExpiredSeen {
			status = wire.StatusExpired
		}
	}
	flag := ev.EntryFlag
	if flag == "" {
		flag = wire.EntryFlagNormal
	}

	if err := q.UpsertUser(ctx, ev.Roll); err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", ev.Roll, err)
	}

	entryID, err := pgUUID(ev.EntryID)
	if err != nil {
		return err
	}
	existing, err := q.GetEntryLog(ctx, entryID)
	switch {
	case err == nil:
		if staleUpdate(existing.ScannedAt, ts) {
			// An older replay must not clobber the newer row. Still acked.
			return nil
		}
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return fmt.Errorf("failed to load entry %s: %w", ev.EntryID, err)
	}

	if err := q.UpsertEntryLog(ctx, db.UpsertEntryLogParams{
		ID:        entryID,
		Roll:      ev.Roll,
		Status:    string(status),
		EntryFlag: pgText(string(flag)),
		Laptop:    pgTextPtr(ev.Laptop),
		Extra:     rawList(ev.Extra),
		ScannedAt: pgTime(ts),
	}); err != nil {
		return fmt.Errorf("failed to upsert entry %s: %w", ev.EntryID, err)
	}
	return nil
}

func applyExit(ctx context.Context, q db.Querier, ev *wire.Event, now time.Time) error {
	ts := eventTime(ev.ScannedAt, now)

	flag := ev.ExitFlag
	if flag == "" {
		flag = wire.ExitFlagNormal
	}

	if err := q.UpsertUser(ctx, ev.Roll); err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", ev.Roll, err)
	}

	var entryID pgtype.UUID
	if ev.EntryID != "" {
		parsed, err := pgUUID(ev.EntryID)
		if err != nil {
			return err
		}
		entryID = parsed
		// The referenced entry may not have arrived yet. Hold its place with
		// a PENDING skeleton so the reference resolves; the real ENTRY event
		// fills it in whenever it lands.
		if err := q.EnsurePendingEntry(ctx, db.EnsurePendingEntryParams{
			ID:   entryID,
			Roll: ev.Roll,
		}); err != nil {
			return fmt.Errorf("failed to ensure entry %s: %w", ev.EntryID, err)
		}
	}

	exitID, err := pgUUID(ev.ExitID)
	if err != nil {
		return err
	}
	existing, err := q.GetExitLog(ctx, exitID)
	switch {
	case err == nil:
		if staleUpdate(existing.ScannedAt, ts) {
			return nil
		}
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return fmt.Errorf("failed to load exit %s: %w", ev.ExitID, err)
	}

	if err := q.UpsertExitLog(ctx, db.UpsertExitLogParams{
		ID:         exitID,
		Roll:       ev.Roll,
		EntryID:    entryID,
		ExitFlag:   string(flag),
		Laptop:     pgTextPtr(ev.Laptop),
		Extra:      rawList(ev.Extra),
		DeviceMeta: rawObject(ev.DeviceMeta),
		ScannedAt:  pgTime(ts),
	}); err != nil {
		return fmt.Errorf("failed to upsert exit %s: %w", ev.ExitID, err)
	}
	return nil
}

// staleUpdate reports whether the stored row carries a newer scan time than
// the incoming event. Last write wins on scanned_at; equal times apply.
func staleUpdate(existing pgtype.Timestamptz, incoming time.Time) bool {
	return existing.Valid && incoming.Before(existing.Time)
}

// eventTime resolves the effective scan time: the event's own timestamp when
// it carries a usable one, otherwise the arrival time.
func eventTime(t *wire.ISOTime, now time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now
	}
	return t.Time.UTC()
}

func eventIDRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

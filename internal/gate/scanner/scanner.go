// Package scanner applies verified gate credentials to the local log. Each
// scan runs in a single transaction: the entry/exit row mutations and the
// outbox events describing them commit together or not at all, so the sync
// worker can never ship an event whose row change was rolled back.
package scanner

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
	"github.com/shub-krishan208/pale-tsg-v2/internal/token"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// Outcome labels what a scan did to the local log. It is empty when the scan
// touched no row (a deny with nothing to mark, or an entry credential that
// carries no entryId).
type Outcome string

const (
	OutcomeEntered         Outcome = "ENTERED"
	OutcomeDuplicateScan   Outcome = "DUPLICATE_SCAN"
	OutcomeUnexpectedState Outcome = "UNEXPECTED_STATE"
	OutcomeExpiredSeen     Outcome = "EXPIRED"
	OutcomeExited          Outcome = "EXITED"
	OutcomeDuplicateExit   Outcome = "DUPLICATE_EXIT"
)

// ScanOptions carries replay knobs for seeding test data. The overrides are
// honoured only in test mode.
type ScanOptions struct {
	TestMode          bool
	OverrideScannedAt *time.Time
	OverrideCreatedAt *time.Time
}

// Result is the operator-facing outcome of a scan. Reason is set only on a
// deny and is printed verbatim at the terminal.
type Result struct {
	Allowed   bool
	Reason    string
	Outcome   Outcome
	EntryID   string
	ExitID    string
	Flag      string
	Status    string
	Displaced int
	ScannedAt time.Time
}

// Scanner records entries and exits on the gate store.
type Scanner struct {
	pool     *pgxpool.Pool
	logger   *zap.Logger
	deviceID string
	now      func() time.Time
}

func New(pool *pgxpool.Pool, logger *zap.Logger, gateDeviceID string) *Scanner {
	return &Scanner{
		pool:     pool,
		logger:   logger,
		deviceID: gateDeviceID,
		now:      time.Now,
	}
}

func (s *Scanner) scanTime(opts ScanOptions) time.Time {
	if opts.TestMode && opts.OverrideScannedAt != nil {
		return opts.OverrideScannedAt.UTC()
	}
	return s.now().UTC()
}

// deviceContext is the device identity attached to the rows and events a
// scan produces. The credential's top-level fields win over the deviceMeta
// object; the meta map itself is copied so claim data is never mutated.
type deviceContext struct {
	meta     map[string]any
	source   string
	os       string
	deviceID string
}

func buildDeviceContext(claims *token.Claims, gateDeviceID string, expired, testMode bool) deviceContext {
	meta := make(map[string]any, len(claims.DeviceMeta)+2)
	for k, v := range claims.DeviceMeta {
		meta[k] = v
	}
	metaStr := func(key string) string {
		s, _ := meta[key].(string)
		return s
	}

	dc := deviceContext{meta: meta, source: claims.Source, os: claims.OS, deviceID: claims.DeviceID}
	if dc.source == "" {
		dc.source = metaStr("source")
	}
	if dc.os == "" {
		dc.os = metaStr("os")
	}
	if dc.deviceID == "" {
		dc.deviceID = metaStr("deviceId")
	}
	if dc.deviceID == "" {
		dc.deviceID = metaStr("id")
	}

	if expired {
		if _, ok := meta["expired"]; !ok {
			meta["expired"] = true
		}
	}
	if gateDeviceID != "" {
		if _, ok := meta["gateDeviceId"]; !ok {
			meta["gateDeviceId"] = gateDeviceID
		}
	}
	if testMode {
		dc.source = "TEST"
		meta["testMode"] = true
	}
	return dc
}

func (dc deviceContext) metaJSON() ([]byte, error) {
	raw, err := json.Marshal(dc.meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode device metadata: %w", err)
	}
	return raw, nil
}

// emit assigns the event a fresh id and queues it on the outbox within the
// caller's transaction. The outbox row's primary key and the payload's
// eventId are the same value.
func emit(ctx context.Context, q db.Querier, ev wire.Event) error {
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

func pgUUID(s string) (pgtype.UUID, error) {
	var u pgtype.UUID
	if err := u.Scan(s); err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return u, nil
}

func uuidString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

func pgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func pgTextPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// rawList normalises an absent or null extras payload to an empty list, the
// same default the store applies on insert.
func rawList(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`[]`)
	}
	return raw
}

// rawObject normalises an absent or null deviceMeta payload to an empty
// object.
func rawObject(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`{}`)
	}
	return raw
}

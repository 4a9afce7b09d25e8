package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	Roll string
}

// EntryLog is the backend's copy of an entry. It carries no device columns;
// device identity stays on the gate side and never crosses the sync link.
type EntryLog struct {
	ID        pgtype.UUID
	Roll      string
	Status    string
	EntryFlag pgtype.Text
	Laptop    pgtype.Text
	Extra     []byte
	CreatedAt pgtype.Timestamptz
	ScannedAt pgtype.Timestamptz
}

type ExitLog struct {
	ID         pgtype.UUID
	Roll       string
	EntryID    pgtype.UUID
	ExitFlag   string
	Laptop     pgtype.Text
	Extra      []byte
	DeviceMeta []byte
	CreatedAt  pgtype.Timestamptz
	ScannedAt  pgtype.Timestamptz
}

// ProcessedGateEvent is the idempotency guard for the sync endpoint. One row
// per accepted event id; a conflicting insert means the event was already
// applied.
type ProcessedGateEvent struct {
	EventID    pgtype.UUID
	EventType  string
	ReceivedAt pgtype.Timestamptz
}

// BucketCount is one grouped row from the dashboard aggregations. Bucket is
// a local wall-clock timestamp, already shifted into the dashboard timezone.
type BucketCount struct {
	Bucket pgtype.Timestamp
	Count  int64
}

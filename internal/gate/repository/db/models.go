package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	Roll string
}

type EntryLog struct {
	ID         pgtype.UUID
	Roll       string
	Status     string
	EntryFlag  pgtype.Text
	Laptop     pgtype.Text
	Extra      []byte
	DeviceMeta []byte
	Source     pgtype.Text
	OS         pgtype.Text
	DeviceID   pgtype.Text
	CreatedAt  pgtype.Timestamptz
	ScannedAt  pgtype.Timestamptz
}

type ExitLog struct {
	ID         pgtype.UUID
	Roll       string
	EntryID    pgtype.UUID
	ExitFlag   string
	Laptop     pgtype.Text
	Extra      []byte
	DeviceMeta []byte
	Source     pgtype.Text
	OS         pgtype.Text
	DeviceID   pgtype.Text
	CreatedAt  pgtype.Timestamptz
	ScannedAt  pgtype.Timestamptz
}

type OutboxEvent struct {
	EventID       pgtype.UUID
	EventType     string
	Payload       []byte
	CreatedAt     pgtype.Timestamptz
	SentAt        pgtype.Timestamptz
	AttemptCount  int32
	LastAttemptAt pgtype.Timestamptz
	NextRetryAt   pgtype.Timestamptz
	LastError     string
}

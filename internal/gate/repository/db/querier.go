package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the full query surface of the gate store. Services depend on
// this interface so tests can substitute a mock.
type Querier interface {
	UpsertUser(ctx context.Context, roll string) error

	GetEntryLog(ctx context.Context, id pgtype.UUID) (EntryLog, error)
	ListEnteredByRoll(ctx context.Context, roll string) ([]EntryLog, error)
	LatestEnteredByRoll(ctx context.Context, roll string) (EntryLog, error)
	CreateEntryLog(ctx context.Context, arg CreateEntryLogParams) (EntryLog, error)
	SetEntryCreatedAt(ctx context.Context, arg SetEntryCreatedAtParams) error
	ExpireEntries(ctx context.Context, arg ExpireEntriesParams) error
	MarkEntryExited(ctx context.Context, id pgtype.UUID) error
	MarkEntryExpired(ctx context.Context, arg MarkEntryExpiredParams) (int64, error)
	ListStaleEntered(ctx context.Context, cutoff pgtype.Timestamptz) ([]EntryLog, error)
	ListEntryLogs(ctx context.Context, arg ListEntryLogsParams) ([]EntryLog, error)

	HasExitForEntry(ctx context.Context, entryID pgtype.UUID) (bool, error)
	CreateExitLog(ctx context.Context, arg CreateExitLogParams) (ExitLog, error)
	SetExitCreatedAt(ctx context.Context, arg SetExitCreatedAtParams) error
	ListExitLogs(ctx context.Context, arg ListExitLogsParams) ([]ExitLog, error)

	InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error
	ClaimOutboxBatch(ctx context.Context, limit int32) ([]OutboxEvent, error)
	MarkOutboxSent(ctx context.Context, eventIDs []pgtype.UUID) error
	MarkOutboxRejected(ctx context.Context, arg MarkOutboxRejectedParams) error
	MarkOutboxRetry(ctx context.Context, arg MarkOutboxRetryParams) error
	CountUnsentOutbox(ctx context.Context) (int64, error)
}

var _ Querier = (*Queries)(nil)

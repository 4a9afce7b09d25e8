package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	UpsertUser(ctx context.Context, roll string) error
	InsertProcessedGateEvent(ctx context.Context, arg InsertProcessedGateEventParams) error

	GetEntryLog(ctx context.Context, id pgtype.UUID) (EntryLog, error)
	UpsertEntryLog(ctx context.Context, arg UpsertEntryLogParams) error
	EnsurePendingEntry(ctx context.Context, arg EnsurePendingEntryParams) error
	CreateIssuedEntry(ctx context.Context, arg CreateIssuedEntryParams) (EntryLog, error)
	LatestEnteredByRoll(ctx context.Context, roll string) (EntryLog, error)

	GetExitLog(ctx context.Context, id pgtype.UUID) (ExitLog, error)
	UpsertExitLog(ctx context.Context, arg UpsertExitLogParams) error

	CountEntriesBetween(ctx context.Context, arg CountEntriesBetweenParams) (int64, error)
	CountExitsBetween(ctx context.Context, arg CountExitsBetweenParams) (int64, error)
	CountCurrentlyInside(ctx context.Context) (int64, error)
	HourlyEntryCounts(ctx context.Context, arg HourlyEntryCountsParams) ([]BucketCount, error)
	HourlyExitCounts(ctx context.Context, arg HourlyExitCountsParams) ([]BucketCount, error)
	DailyEntryCounts(ctx context.Context, arg DailyEntryCountsParams) ([]BucketCount, error)
	DailyExitCounts(ctx context.Context, arg DailyExitCountsParams) ([]BucketCount, error)
}

var _ Querier = (*Queries)(nil)

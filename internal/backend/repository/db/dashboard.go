package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countEntriesBetween = `
SELECT count(*) FROM entry_logs
WHERE scanned_at >= $1 AND scanned_at < $2
`

type CountEntriesBetweenParams struct {
	Since pgtype.Timestamptz
	Until pgtype.Timestamptz
}

func (q *Queries) CountEntriesBetween(ctx context.Context, arg CountEntriesBetweenParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countEntriesBetween, arg.Since, arg.Until).Scan(&count)
	return count, err
}

const countExitsBetween = `
SELECT count(*) FROM exit_logs
WHERE scanned_at >= $1 AND scanned_at < $2
`

type CountExitsBetweenParams struct {
	Since pgtype.Timestamptz
	Until pgtype.Timestamptz
}

func (q *Queries) CountExitsBetween(ctx context.Context, arg CountExitsBetweenParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countExitsBetween, arg.Since, arg.Until).Scan(&count)
	return count, err
}

const countCurrentlyInside = `
SELECT count(*) FROM entry_logs WHERE status = 'ENTERED'
`

func (q *Queries) CountCurrentlyInside(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countCurrentlyInside).Scan(&count)
	return count, err
}

func (q *Queries) bucketCounts(ctx context.Context, sql string, since, until pgtype.Timestamptz, timezone string) ([]BucketCount, error) {
	rows, err := q.db.Query(ctx, sql, since, until, timezone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BucketCount
	for rows.Next() {
		var i BucketCount
		if err := rows.Scan(&i.Bucket, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// Grouped aggregations shift scanned_at into the dashboard timezone first,
// so buckets line up with the local day rather than UTC. Empty buckets are
// not returned.

const hourlyEntryCounts = `
SELECT date_trunc('hour', scanned_at AT TIME ZONE $3) AS bucket, count(*)
FROM entry_logs
WHERE scanned_at >= $1 AND scanned_at < $2
GROUP BY bucket
ORDER BY bucket
`

type HourlyEntryCountsParams struct {
	Since    pgtype.Timestamptz
	Until    pgtype.Timestamptz
	Timezone string
}

func (q *Queries) HourlyEntryCounts(ctx context.Context, arg HourlyEntryCountsParams) ([]BucketCount, error) {
	return q.bucketCounts(ctx, hourlyEntryCounts, arg.Since, arg.Until, arg.Timezone)
}

const hourlyExitCounts = `
SELECT date_trunc('hour', scanned_at AT TIME ZONE $3) AS bucket, count(*)
FROM exit_logs
WHERE scanned_at >= $1 AND scanned_at < $2
GROUP BY bucket
ORDER BY bucket
`

type HourlyExitCountsParams struct {
	Since    pgtype.Timestamptz
	Until    pgtype.Timestamptz
	Timezone string
}

func (q *Queries) HourlyExitCounts(ctx context.Context, arg HourlyExitCountsParams) ([]BucketCount, error) {
	return q.bucketCounts(ctx, hourlyExitCounts, arg.Since, arg.Until, arg.Timezone)
}

const dailyEntryCounts = `
SELECT date_trunc('day', scanned_at AT TIME ZONE $3) AS bucket, count(*)
FROM entry_logs
WHERE scanned_at >= $1 AND scanned_at < $2
GROUP BY bucket
ORDER BY bucket
`

type DailyEntryCountsParams struct {
	Since    pgtype.Timestamptz
	Until    pgtype.Timestamptz
	Timezone string
}

func (q *Queries) DailyEntryCounts(ctx context.Context, arg DailyEntryCountsParams) ([]BucketCount, error) {
	return q.bucketCounts(ctx, dailyEntryCounts, arg.Since, arg.Until, arg.Timezone)
}

const dailyExitCounts = `
SELECT date_trunc('day', scanned_at AT TIME ZONE $3) AS bucket, count(*)
FROM exit_logs
WHERE scanned_at >= $1 AND scanned_at < $2
GROUP BY bucket
ORDER BY bucket
`

type DailyExitCountsParams struct {
	Since    pgtype.Timestamptz
	Until    pgtype.Timestamptz
	Timezone string
}

func (q *Queries) DailyExitCounts(ctx context.Context, arg DailyExitCountsParams) ([]BucketCount, error) {
	return q.bucketCounts(ctx, dailyExitCounts, arg.Since, arg.Until, arg.Timezone)
}

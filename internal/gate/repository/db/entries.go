package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertUser = `
INSERT INTO users (roll)
VALUES ($1)
ON CONFLICT (roll) DO NOTHING
`

func (q *Queries) UpsertUser(ctx context.Context, roll string) error {
	_, err := q.db.Exec(ctx, upsertUser, roll)
	return err
}

const entryLogColumns = `id, roll, status, entry_flag, laptop, extra, device_meta, source, os, device_id, created_at, scanned_at`

func scanEntryLog(row interface{ Scan(dest ...any) error }) (EntryLog, error) {
	var i EntryLog
	err := row.Scan(
		&i.ID,
		&i.Roll,
		&i.Status,
		&i.EntryFlag,
		&i.Laptop,
		&i.Extra,
		&i.DeviceMeta,
		&i.Source,
		&i.OS,
		&i.DeviceID,
		&i.CreatedAt,
		&i.ScannedAt,
	)
	return i, err
}

const getEntryLog = `
SELECT ` + entryLogColumns + `
FROM entry_logs
WHERE id = $1
`

func (q *Queries) GetEntryLog(ctx context.Context, id pgtype.UUID) (EntryLog, error) {
	return scanEntryLog(q.db.QueryRow(ctx, getEntryLog, id))
}

const listEnteredByRoll = `
SELECT ` + entryLogColumns + `
FROM entry_logs
WHERE roll = $1 AND status = 'ENTERED'
ORDER BY created_at
`

func (q *Queries) ListEnteredByRoll(ctx context.Context, roll string) ([]EntryLog, error) {
	rows, err := q.db.Query(ctx, listEnteredByRoll, roll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EntryLog
	for rows.Next() {
		i, err := scanEntryLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const latestEnteredByRoll = `
SELECT ` + entryLogColumns + `
FROM entry_logs
WHERE roll = $1 AND status = 'ENTERED'
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) LatestEnteredByRoll(ctx context.Context, roll string) (EntryLog, error) {
	return scanEntryLog(q.db.QueryRow(ctx, latestEnteredByRoll, roll))
}

const createEntryLog = `
INSERT INTO entry_logs (id, roll, status, entry_flag, laptop, extra, device_meta, source, os, device_id, scanned_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6::jsonb, '[]'::jsonb), COALESCE($7::jsonb, '{}'::jsonb), $8, $9, $10, $11)
RETURNING ` + entryLogColumns + `
`

type CreateEntryLogParams struct {
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
	ScannedAt  pgtype.Timestamptz
}

func (q *Queries) CreateEntryLog(ctx context.Context, arg CreateEntryLogParams) (EntryLog, error) {
	return scanEntryLog(q.db.QueryRow(ctx, createEntryLog,
		arg.ID,
		arg.Roll,
		arg.Status,
		arg.EntryFlag,
		arg.Laptop,
		arg.Extra,
		arg.DeviceMeta,
		arg.Source,
		arg.OS,
		arg.DeviceID,
		arg.ScannedAt,
	))
}

const setEntryCreatedAt = `
UPDATE entry_logs
SET created_at = $2
WHERE id = $1
`

type SetEntryCreatedAtParams struct {
	ID        pgtype.UUID
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) SetEntryCreatedAt(ctx context.Context, arg SetEntryCreatedAtParams) error {
	_, err := q.db.Exec(ctx, setEntryCreatedAt, arg.ID, arg.CreatedAt)
	return err
}

const expireEntries = `
UPDATE entry_logs
SET status = 'EXPIRED', scanned_at = $2
WHERE id = ANY($1::uuid[])
`

type ExpireEntriesParams struct {
	IDs       []pgtype.UUID
	ScannedAt pgtype.Timestamptz
}

func (q *Queries) ExpireEntries(ctx context.Context, arg ExpireEntriesParams) error {
	_, err := q.db.Exec(ctx, expireEntries, arg.IDs, arg.ScannedAt)
	return err
}

const markEntryExited = `
UPDATE entry_logs
SET status = 'EXITED'
WHERE id = $1
`

// MarkEntryExited flips the status only. scanned_at keeps the entry time,
// the exit time lives on the exit row.
func (q *Queries) MarkEntryExited(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, markEntryExited, id)
	return err
}

const markEntryExpired = `
UPDATE entry_logs
SET status = 'EXPIRED', scanned_at = $2
WHERE id = $1
`

type MarkEntryExpiredParams struct {
	ID        pgtype.UUID
	ScannedAt pgtype.Timestamptz
}

// MarkEntryExpired reports the number of rows updated so callers can tell
// whether the entry existed at all.
func (q *Queries) MarkEntryExpired(ctx context.Context, arg MarkEntryExpiredParams) (int64, error) {
	tag, err := q.db.Exec(ctx, markEntryExpired, arg.ID, arg.ScannedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listStaleEntered = `
SELECT ` + entryLogColumns + `
FROM entry_logs
WHERE status = 'ENTERED' AND created_at <= $1
ORDER BY created_at
`

func (q *Queries) ListStaleEntered(ctx context.Context, cutoff pgtype.Timestamptz) ([]EntryLog, error) {
	rows, err := q.db.Query(ctx, listStaleEntered, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EntryLog
	for rows.Next() {
		i, err := scanEntryLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listEntryLogs = `
SELECT ` + entryLogColumns + `
FROM entry_logs
WHERE ($1::timestamptz IS NULL OR created_at >= $1)
  AND ($2::timestamptz IS NULL OR created_at <= $2)
  AND ($3::varchar IS NULL OR roll = $3)
ORDER BY created_at
LIMIT $4 OFFSET $5
`

type ListEntryLogsParams struct {
	Since  pgtype.Timestamptz
	Until  pgtype.Timestamptz
	Roll   pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListEntryLogs(ctx context.Context, arg ListEntryLogsParams) ([]EntryLog, error) {
	rows, err := q.db.Query(ctx, listEntryLogs,
		arg.Since,
		arg.Until,
		arg.Roll,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EntryLog
	for rows.Next() {
		i, err := scanEntryLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

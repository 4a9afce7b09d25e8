package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const exitLogColumns = `id, roll, entry_id, exit_flag, laptop, extra, device_meta, source, os, device_id, created_at, scanned_at`

func scanExitLog(row interface{ Scan(dest ...any) error }) (ExitLog, error) {
	var i ExitLog
	err := row.Scan(
		&i.ID,
		&i.Roll,
		&i.EntryID,
		&i.ExitFlag,
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

const hasExitForEntry = `
SELECT EXISTS (SELECT 1 FROM exit_logs WHERE entry_id = $1)
`

func (q *Queries) HasExitForEntry(ctx context.Context, entryID pgtype.UUID) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, hasExitForEntry, entryID).Scan(&exists)
	return exists, err
}

const createExitLog = `
INSERT INTO exit_logs (id, roll, entry_id, exit_flag, laptop, extra, device_meta, source, os, device_id, scanned_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6::jsonb, '[]'::jsonb), COALESCE($7::jsonb, '{}'::jsonb), $8, $9, $10, $11)
RETURNING ` + exitLogColumns + `
`

type CreateExitLogParams struct {
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
	ScannedAt  pgtype.Timestamptz
}

func (q *Queries) CreateExitLog(ctx context.Context, arg CreateExitLogParams) (ExitLog, error) {
	return scanExitLog(q.db.QueryRow(ctx, createExitLog,
		arg.ID,
		arg.Roll,
		arg.EntryID,
		arg.ExitFlag,
		arg.Laptop,
		arg.Extra,
		arg.DeviceMeta,
		arg.Source,
		arg.OS,
		arg.DeviceID,
		arg.ScannedAt,
	))
}

const setExitCreatedAt = `
UPDATE exit_logs
SET created_at = $2
WHERE id = $1
`

type SetExitCreatedAtParams struct {
	ID        pgtype.UUID
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) SetExitCreatedAt(ctx context.Context, arg SetExitCreatedAtParams) error {
	_, err := q.db.Exec(ctx, setExitCreatedAt, arg.ID, arg.CreatedAt)
	return err
}

const listExitLogs = `
SELECT ` + exitLogColumns + `
FROM exit_logs
WHERE ($1::timestamptz IS NULL OR created_at >= $1)
  AND ($2::timestamptz IS NULL OR created_at <= $2)
  AND ($3::varchar IS NULL OR roll = $3)
ORDER BY created_at
LIMIT $4 OFFSET $5
`

type ListExitLogsParams struct {
	Since  pgtype.Timestamptz
	Until  pgtype.Timestamptz
	Roll   pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListExitLogs(ctx context.Context, arg ListExitLogsParams) ([]ExitLog, error) {
	rows, err := q.db.Query(ctx, listExitLogs,
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
	var items []ExitLog
	for rows.Next() {
		i, err := scanExitLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const exitLogColumns = `id, roll, entry_id, exit_flag, laptop, extra, device_meta, created_at, scanned_at`

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
		&i.CreatedAt,
		&i.ScannedAt,
	)
	return i, err
}

const getExitLog = `
SELECT ` + exitLogColumns + `
FROM exit_logs
WHERE id = $1
`

func (q *Queries) GetExitLog(ctx context.Context, id pgtype.UUID) (ExitLog, error) {
	return scanExitLog(q.db.QueryRow(ctx, getExitLog, id))
}

const upsertExitLog = `
INSERT INTO exit_logs (id, roll, entry_id, exit_flag, laptop, extra, device_meta, scanned_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6::jsonb, '[]'::jsonb), COALESCE($7::jsonb, '{}'::jsonb), $8)
ON CONFLICT (id) DO UPDATE SET
    roll = EXCLUDED.roll,
    entry_id = EXCLUDED.entry_id,
    exit_flag = EXCLUDED.exit_flag,
    laptop = EXCLUDED.laptop,
    extra = EXCLUDED.extra,
    device_meta = EXCLUDED.device_meta,
    scanned_at = EXCLUDED.scanned_at
`

type UpsertExitLogParams struct {
	ID         pgtype.UUID
	Roll       string
	EntryID    pgtype.UUID
	ExitFlag   string
	Laptop     pgtype.Text
	Extra      []byte
	DeviceMeta []byte
	ScannedAt  pgtype.Timestamptz
}

func (q *Queries) UpsertExitLog(ctx context.Context, arg UpsertExitLogParams) error {
	_, err := q.db.Exec(ctx, upsertExitLog,
		arg.ID,
		arg.Roll,
		arg.EntryID,
		arg.ExitFlag,
		arg.Laptop,
		arg.Extra,
		arg.DeviceMeta,
		arg.ScannedAt,
	)
	return err
}

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

const entryLogColumns = `id, roll, status, entry_flag, laptop, extra, created_at, scanned_at`

func scanEntryLog(row interface{ Scan(dest ...any) error }) (EntryLog, error) {
	var i EntryLog
	err := row.Scan(
		&i.ID,
		&i.Roll,
		&i.Status,
		&i.EntryFlag,
		&i.Laptop,
		&i.Extra,
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

const upsertEntryLog = `
INSERT INTO entry_logs (id, roll, status, entry_flag, laptop, extra, scanned_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6::jsonb, '[]'::jsonb), $7)
ON CONFLICT (id) DO UPDATE SET
    roll = EXCLUDED.roll,
    status = EXCLUDED.status,
    entry_flag = EXCLUDED.entry_flag,
    laptop = EXCLUDED.laptop,
    extra = EXCLUDED.extra,
    scanned_at = EXCLUDED.scanned_at
`

type UpsertEntryLogParams struct {
	ID        pgtype.UUID
	Roll      string
	Status    string
	EntryFlag pgtype.Text
	Laptop    pgtype.Text
	Extra     []byte
	ScannedAt pgtype.Timestamptz
}

// UpsertEntryLog overwrites the synced columns unconditionally. The caller
// decides whether the incoming event wins before calling this.
func (q *Queries) UpsertEntryLog(ctx context.Context, arg UpsertEntryLogParams) error {
	_, err := q.db.Exec(ctx, upsertEntryLog,
		arg.ID,
		arg.Roll,
		arg.Status,
		arg.EntryFlag,
		arg.Laptop,
		arg.Extra,
		arg.ScannedAt,
	)
	return err
}

const ensurePendingEntry = `
INSERT INTO entry_logs (id, roll, status)
VALUES ($1, $2, 'PENDING')
ON CONFLICT (id) DO NOTHING
`

type EnsurePendingEntryParams struct {
	ID   pgtype.UUID
	Roll string
}

// EnsurePendingEntry creates a skeleton entry for an exit that references an
// entry the backend has not seen yet. The real ENTRY event fills it in when
// it arrives.
func (q *Queries) EnsurePendingEntry(ctx context.Context, arg EnsurePendingEntryParams) error {
	_, err := q.db.Exec(ctx, ensurePendingEntry, arg.ID, arg.Roll)
	return err
}

const createIssuedEntry = `
INSERT INTO entry_logs (id, roll, status, laptop, extra)
VALUES ($1, $2, 'PENDING', $3, COALESCE($4::jsonb, '[]'::jsonb))
RETURNING ` + entryLogColumns + `
`

type CreateIssuedEntryParams struct {
	ID     pgtype.UUID
	Roll   string
	Laptop pgtype.Text
	Extra  []byte
}

func (q *Queries) CreateIssuedEntry(ctx context.Context, arg CreateIssuedEntryParams) (EntryLog, error) {
	return scanEntryLog(q.db.QueryRow(ctx, createIssuedEntry,
		arg.ID,
		arg.Roll,
		arg.Laptop,
		arg.Extra,
	))
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

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertOutboxEvent = `
INSERT INTO gate_outbox_events (event_id, event_type, payload)
VALUES ($1, $2, $3)
`

type InsertOutboxEventParams struct {
	EventID   pgtype.UUID
	EventType string
	Payload   []byte
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error {
	_, err := q.db.Exec(ctx, insertOutboxEvent, arg.EventID, arg.EventType, arg.Payload)
	return err
}

const claimOutboxBatch = `
SELECT event_id, event_type, payload, created_at, sent_at, attempt_count, last_attempt_at, next_retry_at, last_error
FROM gate_outbox_events
WHERE sent_at IS NULL
  AND (next_retry_at IS NULL OR next_retry_at <= now())
ORDER BY created_at
LIMIT $1
FOR UPDATE SKIP LOCKED
`

// ClaimOutboxBatch picks the oldest due rows. Skip-locked keeps concurrent
// workers from claiming the same rows; the caller must hold the enclosing
// transaction only long enough to read the batch.
func (q *Queries) ClaimOutboxBatch(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := q.db.Query(ctx, claimOutboxBatch, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OutboxEvent
	for rows.Next() {
		var i OutboxEvent
		if err := rows.Scan(
			&i.EventID,
			&i.EventType,
			&i.Payload,
			&i.CreatedAt,
			&i.SentAt,
			&i.AttemptCount,
			&i.LastAttemptAt,
			&i.NextRetryAt,
			&i.LastError,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const markOutboxSent = `
UPDATE gate_outbox_events
SET sent_at = now(), last_error = ''
WHERE event_id = ANY($1::uuid[]) AND sent_at IS NULL
`

func (q *Queries) MarkOutboxSent(ctx context.Context, eventIDs []pgtype.UUID) error {
	_, err := q.db.Exec(ctx, markOutboxSent, eventIDs)
	return err
}

const markOutboxRejected = `
UPDATE gate_outbox_events
SET sent_at = now(), last_attempt_at = now(), last_error = $2
WHERE event_id = $1 AND sent_at IS NULL
`

type MarkOutboxRejectedParams struct {
	EventID   pgtype.UUID
	LastError string
}

// MarkOutboxRejected retires a row the backend refused. Setting sent_at
// stops retries; the rejection reason stays queryable in last_error.
func (q *Queries) MarkOutboxRejected(ctx context.Context, arg MarkOutboxRejectedParams) error {
	_, err := q.db.Exec(ctx, markOutboxRejected, arg.EventID, arg.LastError)
	return err
}

const markOutboxRetry = `
UPDATE gate_outbox_events
SET attempt_count = attempt_count + 1,
    last_attempt_at = now(),
    next_retry_at = $2,
    last_error = $3
WHERE event_id = $1 AND sent_at IS NULL
`

type MarkOutboxRetryParams struct {
	EventID     pgtype.UUID
	NextRetryAt pgtype.Timestamptz
	LastError   string
}

func (q *Queries) MarkOutboxRetry(ctx context.Context, arg MarkOutboxRetryParams) error {
	_, err := q.db.Exec(ctx, markOutboxRetry, arg.EventID, arg.NextRetryAt, arg.LastError)
	return err
}

const countUnsentOutbox = `
SELECT count(*) FROM gate_outbox_events WHERE sent_at IS NULL
`

func (q *Queries) CountUnsentOutbox(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countUnsentOutbox).Scan(&count)
	return count, err
}

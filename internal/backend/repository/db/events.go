package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertProcessedGateEvent = `
INSERT INTO processed_gate_events (event_id, event_type)
VALUES ($1, $2)
`

type InsertProcessedGateEventParams struct {
	EventID   pgtype.UUID
	EventType string
}

// InsertProcessedGateEvent claims an event id. A unique violation here means
// the event was applied by an earlier request and must be acked, not re-run.
func (q *Queries) InsertProcessedGateEvent(ctx context.Context, arg InsertProcessedGateEventParams) error {
	_, err := q.db.Exec(ctx, insertProcessedGateEvent, arg.EventID, arg.EventType)
	return err
}

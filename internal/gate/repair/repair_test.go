package repair

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/mock"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/syncer"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

var repairAt = time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)

func mustPgUUID(t *testing.T, s string) pgtype.UUID {
	t.Helper()
	var u pgtype.UUID
	require.NoError(t, u.Scan(s))
	return u
}

// ackAllServer acks every event it receives and records them in order.
func ackAllServer(t *testing.T, got *[]wire.Event) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wire.SyncRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		acked := make([]string, 0, len(req.Events))
		for _, ev := range req.Events {
			*got = append(*got, ev)
			acked = append(acked, ev.EventID)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(wire.SyncResponse{AckedEventIDs: acked, ServerTime: time.Now().UTC()})
	}))
}

func TestRunReplaysEverythingInPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)

	e1 := db.EntryLog{
		ID:        mustPgUUID(t, "0195f9a0-0000-7000-8000-000000000001"),
		Roll:      "21BCS001",
		Status:    "EXITED",
		EntryFlag: pgtype.Text{String: "NORMAL_ENTRY", Valid: true},
		Laptop:    pgtype.Text{String: "dell-xps", Valid: true},
		Extra:     []byte(`["bag"]`),
		ScannedAt: pgtype.Timestamptz{Time: repairAt.Add(-26 * time.Hour), Valid: true},
		CreatedAt: pgtype.Timestamptz{Time: repairAt.Add(-27 * time.Hour), Valid: true},
	}
	e2 := db.EntryLog{
		ID:        mustPgUUID(t, "0195f9a0-0000-7000-8000-000000000002"),
		Roll:      "21BCS002",
		Status:    "ENTERED",
		CreatedAt: pgtype.Timestamptz{Time: repairAt.Add(-2 * time.Hour), Valid: true},
	}
	// no timestamps at all; the event falls back to the run time
	e3 := db.EntryLog{
		ID:     mustPgUUID(t, "0195f9a0-0000-7000-8000-000000000003"),
		Roll:   "21BCS003",
		Status: "PENDING",
	}
	x1 := db.ExitLog{
		ID:        mustPgUUID(t, "0195f9a0-0000-7000-8000-000000000011"),
		Roll:      "21BCS001",
		EntryID:   e1.ID,
		ExitFlag:  "NORMAL_EXIT",
		ScannedAt: pgtype.Timestamptz{Time: repairAt.Add(-20 * time.Hour), Valid: true},
	}

	gomock.InOrder(
		q.EXPECT().ListEntryLogs(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, arg db.ListEntryLogsParams) ([]db.EntryLog, error) {
				assert.Equal(t, int32(2), arg.Limit)
				assert.Equal(t, int32(0), arg.Offset)
				assert.False(t, arg.Since.Valid)
				assert.False(t, arg.Roll.Valid)
				return []db.EntryLog{e1, e2}, nil
			}),
		q.EXPECT().ListEntryLogs(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, arg db.ListEntryLogsParams) ([]db.EntryLog, error) {
				assert.Equal(t, int32(2), arg.Offset)
				return []db.EntryLog{e3}, nil
			}),
		q.EXPECT().ListEntryLogs(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, arg db.ListEntryLogsParams) ([]db.EntryLog, error) {
				assert.Equal(t, int32(3), arg.Offset)
				return nil, nil
			}),
		q.EXPECT().ListExitLogs(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, arg db.ListExitLogsParams) ([]db.ExitLog, error) {
				assert.Equal(t, int32(0), arg.Offset)
				return []db.ExitLog{x1}, nil
			}),
		q.EXPECT().ListExitLogs(gomock.Any(), gomock.Any()).Return(nil, nil),
	)

	var got []wire.Event
	srv := ackAllServer(t, &got)
	defer srv.Close()

	r := New(q, syncer.NewClient(srv.URL, "secret", 5*time.Second), zap.NewNop(), 2)
	r.now = func() time.Time { return repairAt }

	report, err := r.Run(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.EntriesSent)
	assert.Equal(t, 3, report.EntriesAcked)
	assert.Equal(t, 1, report.ExitsSent)
	assert.Equal(t, 1, report.ExitsAcked)
	assert.Zero(t, report.Rejected)

	require.Len(t, got, 4)
	// Replayed events use the row id as event id and carry no device fields.
	assert.Equal(t, "0195f9a0-0000-7000-8000-000000000001", got[0].EventID)
	assert.Equal(t, "0195f9a0-0000-7000-8000-000000000001", got[0].EntryID)
	assert.Equal(t, wire.EventEntry, got[0].Type)
	assert.Equal(t, wire.EntryStatus("EXITED"), got[0].Status)
	assert.Equal(t, "dell-xps", *got[0].Laptop)
	assert.Empty(t, got[0].DeviceMeta)
	assert.Empty(t, got[0].DeviceID)
	assert.WithinDuration(t, repairAt.Add(-26*time.Hour), got[0].ScannedAt.Time, 0)

	// scanned_at missing, created_at used
	assert.WithinDuration(t, repairAt.Add(-2*time.Hour), got[1].ScannedAt.Time, 0)
	// nothing at all, run time used
	assert.WithinDuration(t, repairAt, got[2].ScannedAt.Time, 0)

	assert.Equal(t, wire.EventExit, got[3].Type)
	assert.Equal(t, "0195f9a0-0000-7000-8000-000000000011", got[3].ExitID)
	assert.Equal(t, "0195f9a0-0000-7000-8000-000000000001", got[3].EntryID)
	assert.Equal(t, wire.ExitFlagNormal, got[3].ExitFlag)
}

func TestRunAppliesFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)

	since := repairAt.Add(-48 * time.Hour)
	until := repairAt

	q.EXPECT().ListEntryLogs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.ListEntryLogsParams) ([]db.EntryLog, error) {
			assert.True(t, arg.Since.Valid)
			assert.Equal(t, since, arg.Since.Time)
			assert.True(t, arg.Until.Valid)
			assert.Equal(t, until, arg.Until.Time)
			assert.Equal(t, "21BCS001", arg.Roll.String)
			return nil, nil
		})
	q.EXPECT().ListExitLogs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.ListExitLogsParams) ([]db.ExitLog, error) {
			assert.Equal(t, "21BCS001", arg.Roll.String)
			return nil, nil
		})

	r := New(q, syncer.NewClient("http://unused.invalid", "secret", time.Second), zap.NewNop(), 0)
	report, err := r.Run(context.Background(), Filter{Since: &since, Until: &until, Roll: "21BCS001"})
	require.NoError(t, err)
	assert.Zero(t, report.EntriesSent)
}

func TestRunCountsRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)

	entry := db.EntryLog{ID: mustPgUUID(t, "0195f9a0-0000-7000-8000-000000000001"), Roll: "21BCS001", Status: "ENTERED"}

	gomock.InOrder(
		q.EXPECT().ListEntryLogs(gomock.Any(), gomock.Any()).Return([]db.EntryLog{entry}, nil),
		q.EXPECT().ListEntryLogs(gomock.Any(), gomock.Any()).Return(nil, nil),
		q.EXPECT().ListExitLogs(gomock.Any(), gomock.Any()).Return(nil, nil),
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := "0195f9a0-0000-7000-8000-000000000001"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(wire.SyncResponse{
			Rejected:   []wire.RejectedEvent{{EventID: &id, Error: "ENTRY requires entryId and roll"}},
			ServerTime: time.Now().UTC(),
		})
	}))
	defer srv.Close()

	r := New(q, syncer.NewClient(srv.URL, "secret", 5*time.Second), zap.NewNop(), 200)
	report, err := r.Run(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.EntriesSent)
	assert.Zero(t, report.EntriesAcked)
	assert.Equal(t, 1, report.Rejected)
}

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/repository/mock"
)

// The dashboard runs on a +05:30 wall clock; a fixed zone keeps the test
// independent of the host's tz database.
var dashboardZone = time.FixedZone("IST", 5*3600+1800)

func pgTS(t time.Time) pgtype.Timestamp {
	return pgtype.Timestamp{Time: t, Valid: true}
}

func newTestDashboard(q db.Querier, at time.Time) *dashboardService {
	return &dashboardService{
		querier: q,
		loc:     dashboardZone,
		now:     func() time.Time { return at },
	}
}

func TestSummaryAggregatesLocalDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)

	at := time.Date(2025, 3, 14, 22, 45, 0, 0, dashboardZone)
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, dashboardZone)
	dayEnd := time.Date(2025, 3, 15, 0, 0, 0, 0, dashboardZone)
	weekStart := time.Date(2025, 3, 8, 0, 0, 0, 0, dashboardZone)
	svc := newTestDashboard(q, at)

	q.EXPECT().CountEntriesBetween(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.CountEntriesBetweenParams) (int64, error) {
			assert.True(t, arg.Since.Time.Equal(dayStart))
			assert.True(t, arg.Until.Time.Equal(dayEnd))
			return 12, nil
		},
	)
	q.EXPECT().CountExitsBetween(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.CountExitsBetweenParams) (int64, error) {
			assert.True(t, arg.Since.Time.Equal(dayStart))
			assert.True(t, arg.Until.Time.Equal(dayEnd))
			return 9, nil
		},
	)
	q.EXPECT().CountCurrentlyInside(gomock.Any()).Return(int64(3), nil)

	// Bucket rows come back as naive local wall-clock timestamps.
	hour10 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	hour11 := time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC)
	hour12 := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	q.EXPECT().HourlyEntryCounts(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.HourlyEntryCountsParams) ([]db.BucketCount, error) {
			assert.True(t, arg.Since.Time.Equal(dayStart))
			assert.True(t, arg.Until.Time.Equal(dayEnd))
			assert.Equal(t, "IST", arg.Timezone)
			return []db.BucketCount{{Bucket: pgTS(hour10), Count: 3}, {Bucket: pgTS(hour11), Count: 2}}, nil
		},
	)
	q.EXPECT().HourlyExitCounts(gomock.Any(), gomock.Any()).Return(
		[]db.BucketCount{{Bucket: pgTS(hour11), Count: 1}, {Bucket: pgTS(hour12), Count: 4}}, nil)

	day13 := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	day14 := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	q.EXPECT().DailyEntryCounts(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.DailyEntryCountsParams) ([]db.BucketCount, error) {
			assert.True(t, arg.Since.Time.Equal(weekStart))
			assert.True(t, arg.Until.Time.Equal(dayEnd))
			return []db.BucketCount{{Bucket: pgTS(day13), Count: 5}, {Bucket: pgTS(day14), Count: 12}}, nil
		},
	)
	q.EXPECT().DailyExitCounts(gomock.Any(), gomock.Any()).Return(
		[]db.BucketCount{{Bucket: pgTS(day14), Count: 9}}, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.Today.Entries)
	assert.Equal(t, int64(9), summary.Today.Exits)
	assert.Equal(t, int64(3), summary.Today.CurrentInside)

	require.Len(t, summary.Hourly, 3)
	assert.Equal(t, HourBucket{Hour: "2025-03-14T10:00:00", Entries: 3, Exits: 0}, summary.Hourly[0])
	assert.Equal(t, HourBucket{Hour: "2025-03-14T11:00:00", Entries: 2, Exits: 1}, summary.Hourly[1])
	assert.Equal(t, HourBucket{Hour: "2025-03-14T12:00:00", Entries: 0, Exits: 4}, summary.Hourly[2])

	require.Len(t, summary.Daily, 2)
	assert.Equal(t, DayBucket{Day: "2025-03-13", Entries: 5, Exits: 0}, summary.Daily[0])
	assert.Equal(t, DayBucket{Day: "2025-03-14", Entries: 12, Exits: 9}, summary.Daily[1])

	assert.Equal(t, "2025-03-14T22:45:00+05:30", summary.Timestamp)
}

func TestSummaryEmptyDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)

	at := time.Date(2025, 3, 14, 6, 0, 0, 0, dashboardZone)
	svc := newTestDashboard(q, at)

	q.EXPECT().CountEntriesBetween(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	q.EXPECT().CountExitsBetween(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	q.EXPECT().CountCurrentlyInside(gomock.Any()).Return(int64(0), nil)
	q.EXPECT().HourlyEntryCounts(gomock.Any(), gomock.Any()).Return(nil, nil)
	q.EXPECT().HourlyExitCounts(gomock.Any(), gomock.Any()).Return(nil, nil)
	q.EXPECT().DailyEntryCounts(gomock.Any(), gomock.Any()).Return(nil, nil)
	q.EXPECT().DailyExitCounts(gomock.Any(), gomock.Any()).Return(nil, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.Today.Entries)
	assert.Empty(t, summary.Hourly)
	assert.Empty(t, summary.Daily)

	// A day with no scans serialises as empty lists, not null.
	body, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"hourly":[]`)
	assert.Contains(t, string(body), `"daily_7d":[]`)
}

func TestMergeBucketsOrdersMixedSides(t *testing.T) {
	early := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	// The exit-only bucket precedes every entry bucket and must sort first.
	merged := mergeBuckets(
		[]db.BucketCount{{Bucket: pgTS(late), Count: 2}},
		[]db.BucketCount{{Bucket: pgTS(early), Count: 7}},
	)
	require.Len(t, merged, 2)
	assert.Equal(t, early, merged[0].at)
	assert.Equal(t, int64(7), merged[0].exits)
	assert.Zero(t, merged[0].entries)
	assert.Equal(t, late, merged[1].at)
	assert.Equal(t, int64(2), merged[1].entries)
}

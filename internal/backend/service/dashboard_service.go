package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/repository/db"
)

// TodayCounts are the headline numbers for the local day. CurrentInside is
// not day-scoped: whoever is still marked ENTERED counts, whenever they came
// in.
type TodayCounts struct {
	Entries       int64 `json:"entries"`
	Exits         int64 `json:"exits"`
	CurrentInside int64 `json:"current_inside"`
}

// HourBucket is one hour of the local day with at least one scan. Hours with
// no traffic are not emitted.
type HourBucket struct {
	Hour    string `json:"hour"`
	Entries int64  `json:"entries"`
	Exits   int64  `json:"exits"`
}

// DayBucket is one local day of the trailing week with at least one scan.
type DayBucket struct {
	Day     string `json:"day"`
	Entries int64  `json:"entries"`
	Exits   int64  `json:"exits"`
}

// Summary is the kiosk dashboard document. Timestamp carries the dashboard
// timezone offset so the kiosk can render local time without guessing.
type Summary struct {
	Today     TodayCounts  `json:"today"`
	Hourly    []HourBucket `json:"hourly"`
	Daily     []DayBucket  `json:"daily_7d"`
	Timestamp string       `json:"timestamp"`
}

// --- Service Interface ---

type DashboardService interface {
	Summary(ctx context.Context) (*Summary, error)
}

// --- Service Implementation ---

type dashboardService struct {
	querier db.Querier
	loc     *time.Location
	now     func() time.Time
}

// NewDashboardService builds the summary reader. loc is the dashboard
// timezone; day boundaries and bucket labels follow it, not UTC.
func NewDashboardService(q db.Querier, loc *time.Location) DashboardService {
	return &dashboardService{querier: q, loc: loc, now: time.Now}
}

func (s *dashboardService) Summary(ctx context.Context) (*Summary, error) {
	now := s.now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := dayStart.AddDate(0, 0, -6)

	entries, err := s.querier.CountEntriesBetween(ctx, db.CountEntriesBetweenParams{
		Since: pgTime(dayStart),
		Until: pgTime(dayEnd),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count today's entries: %w", err)
	}
	exits, err := s.querier.CountExitsBetween(ctx, db.CountExitsBetweenParams{
		Since: pgTime(dayStart),
		Until: pgTime(dayEnd),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count today's exits: %w", err)
	}
	inside, err := s.querier.CountCurrentlyInside(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count people inside: %w", err)
	}

	tz := s.loc.String()
	hourlyEntries, err := s.querier.HourlyEntryCounts(ctx, db.HourlyEntryCountsParams{
		Since: pgTime(dayStart), Until: pgTime(dayEnd), Timezone: tz,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load hourly entry counts: %w", err)
	}
	hourlyExits, err := s.querier.HourlyExitCounts(ctx, db.HourlyExitCountsParams{
		Since: pgTime(dayStart), Until: pgTime(dayEnd), Timezone: tz,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load hourly exit counts: %w", err)
	}
	dailyEntries, err := s.querier.DailyEntryCounts(ctx, db.DailyEntryCountsParams{
		Since: pgTime(weekStart), Until: pgTime(dayEnd), Timezone: tz,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load daily entry counts: %w", err)
	}
	dailyExits, err := s.querier.DailyExitCounts(ctx, db.DailyExitCountsParams{
		Since: pgTime(weekStart), Until: pgTime(dayEnd), Timezone: tz,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load daily exit counts: %w", err)
	}

	return &Summary{
		Today:     TodayCounts{Entries: entries, Exits: exits, CurrentInside: inside},
		Hourly:    hourBuckets(mergeBuckets(hourlyEntries, hourlyExits)),
		Daily:     dayBuckets(mergeBuckets(dailyEntries, dailyExits)),
		Timestamp: now.Format(time.RFC3339),
	}, nil
}

// --- Bucket Merging ---

type bucketTotals struct {
	at      time.Time
	entries int64
	exits   int64
}

// mergeBuckets folds the per-table grouped counts into one ordered series. A
// bucket present on only one side counts zero on the other; buckets with no
// rows at all are not invented.
func mergeBuckets(entryRows, exitRows []db.BucketCount) []bucketTotals {
	byTime := make(map[time.Time]*bucketTotals, len(entryRows)+len(exitRows))
	order := make([]time.Time, 0, len(entryRows)+len(exitRows))

	fold := func(rows []db.BucketCount, add func(*bucketTotals, int64)) {
		for _, row := range rows {
			key := row.Bucket.Time
			b, ok := byTime[key]
			if !ok {
				b = &bucketTotals{at: key}
				byTime[key] = b
				order = append(order, key)
			}
			add(b, row.Count)
		}
	}
	fold(entryRows, func(b *bucketTotals, n int64) { b.entries += n })
	fold(exitRows, func(b *bucketTotals, n int64) { b.exits += n })

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })
	out := make([]bucketTotals, 0, len(order))
	for _, key := range order {
		out = append(out, *byTime[key])
	}
	return out
}

func hourBuckets(merged []bucketTotals) []HourBucket {
	out := make([]HourBucket, 0, len(merged))
	for _, b := range merged {
		out = append(out, HourBucket{
			Hour:    b.at.Format("2006-01-02T15:04:05"),
			Entries: b.entries,
			Exits:   b.exits,
		})
	}
	return out
}

func dayBuckets(merged []bucketTotals) []DayBucket {
	out := make([]DayBucket, 0, len(merged))
	for _, b := range merged {
		out = append(out, DayBucket{
			Day:     b.at.Format("2006-01-02"),
			Entries: b.entries,
			Exits:   b.exits,
		})
	}
	return out
}

package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/token"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// ProcessEntry applies an entry-mode scan. expired marks a credential that
// failed verification only on its expiry; such scans are denied, but the
// referenced entry is still closed out and reported upstream.
func (s *Scanner) ProcessEntry(ctx context.Context, claims *token.Claims, expired bool, opts ScanOptions) (*Result, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	res, err := s.processEntry(ctx, db.New(tx), claims, expired, opts)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return res, nil
}

func (s *Scanner) processEntry(ctx context.Context, q db.Querier, claims *token.Claims, expired bool, opts ScanOptions) (*Result, error) {
	if opts.TestMode {
		expired = false
	}
	ts := s.scanTime(opts)
	dev := buildDeviceContext(claims, s.deviceID, expired, opts.TestMode)

	if expired {
		return s.entryExpired(ctx, q, claims, dev, ts)
	}

	// A valid credential without an entryId has nothing to record. The scan
	// passes on the strength of the signature alone.
	if claims.EntryID == "" {
		return &Result{Allowed: true, ScannedAt: ts}, nil
	}
	entryID, err := pgUUID(claims.EntryID)
	if err != nil {
		return nil, fmt.Errorf("invalid entryId claim: %w", err)
	}

	existing, err := q.GetEntryLog(ctx, entryID)
	switch {
	case err == nil:
		if existing.Status == string(wire.StatusEntered) {
			// First scan wins. Nothing changes and nothing syncs.
			s.logger.Info("duplicate entry scan",
				zap.String("entry_id", claims.EntryID),
				zap.String("roll", claims.Roll),
			)
			return &Result{
				Allowed:   true,
				Outcome:   OutcomeDuplicateScan,
				EntryID:   claims.EntryID,
				Status:    existing.Status,
				ScannedAt: ts,
			}, nil
		}
		s.logger.Warn("unexpected entry state on scan, ignoring",
			zap.String("entry_id", claims.EntryID),
			zap.String("status", existing.Status),
		)
		return &Result{
			Allowed:   true,
			Outcome:   OutcomeUnexpectedState,
			EntryID:   claims.EntryID,
			Status:    existing.Status,
			ScannedAt: ts,
		}, nil
	case errors.Is(err, pgx.ErrNoRows):
		return s.entryCreate(ctx, q, claims, dev, entryID, ts, opts)
	default:
		return nil, fmt.Errorf("failed to look up entry: %w", err)
	}
}

// entryExpired closes out the entry named by an expired credential. The scan
// is denied either way; the EXPIRED mark and its event are only produced
// when the entry actually exists locally.
func (s *Scanner) entryExpired(ctx context.Context, q db.Querier, claims *token.Claims, dev deviceContext, ts time.Time) (*Result, error) {
	denied := &Result{Allowed: false, Reason: token.ErrExpired.Error(), ScannedAt: ts}
	if claims.EntryID == "" {
		return denied, nil
	}
	entryID, err := pgUUID(claims.EntryID)
	if err != nil {
		return nil, fmt.Errorf("invalid entryId claim: %w", err)
	}

	updated, err := q.MarkEntryExpired(ctx, db.MarkEntryExpiredParams{ID: entryID, ScannedAt: pgTime(ts)})
	if err != nil {
		return nil, fmt.Errorf("failed to mark entry expired: %w", err)
	}
	if updated == 0 {
		return denied, nil
	}

	meta, err := dev.metaJSON()
	if err != nil {
		return nil, err
	}
	ev := wire.Event{
		Type:       wire.EventEntryExpiredSeen,
		EntryID:    claims.EntryID,
		Roll:       claims.Roll,
		ScannedAt:  wire.NewISOTime(ts),
		Status:     wire.StatusExpired,
		Laptop:     claims.Laptop,
		Extra:      rawList(claims.Extra),
		DeviceMeta: meta,
		DeviceID:   dev.deviceID,
		Source:     dev.source,
		OS:         dev.os,
	}
	if err := emit(ctx, q, ev); err != nil {
		return nil, err
	}

	s.logger.Info("expired credential seen, entry closed",
		zap.String("entry_id", claims.EntryID),
		zap.String("roll", claims.Roll),
	)
	denied.Outcome = OutcomeExpiredSeen
	denied.EntryID = claims.EntryID
	denied.Status = string(wire.StatusExpired)
	return denied, nil
}

// entryCreate records a fresh entry. Any entries still open for the roll are
// force-expired first and each displacement is reported upstream, then the
// new row is created and synced.
func (s *Scanner) entryCreate(ctx context.Context, q db.Querier, claims *token.Claims, dev deviceContext, entryID pgtype.UUID, ts time.Time, opts ScanOptions) (*Result, error) {
	// Snapshot the open entries before the bulk update empties the set.
	open, err := q.ListEnteredByRoll(ctx, claims.Roll)
	if err != nil {
		return nil, fmt.Errorf("failed to list open entries: %w", err)
	}

	flag := wire.EntryFlagNormal
	if len(open) > 0 {
		flag = wire.EntryFlagForced
		ids := make([]pgtype.UUID, len(open))
		for i, row := range open {
			ids[i] = row.ID
		}
		if err := q.ExpireEntries(ctx, db.ExpireEntriesParams{IDs: ids, ScannedAt: pgTime(ts)}); err != nil {
			return nil, fmt.Errorf("failed to expire open entries: %w", err)
		}
		for _, row := range open {
			ev := wire.Event{
				Type:       wire.EventEntry,
				EntryID:    uuidString(row.ID),
				Roll:       claims.Roll,
				ScannedAt:  wire.NewISOTime(ts),
				Status:     wire.StatusExpired,
				EntryFlag:  wire.EntryFlag(row.EntryFlag.String),
				Laptop:     textPtr(row.Laptop),
				Extra:      rawList(row.Extra),
				DeviceMeta: rawObject(row.DeviceMeta),
				DeviceID:   row.DeviceID.String,
				Source:     row.Source.String,
				OS:         row.OS.String,
			}
			if err := emit(ctx, q, ev); err != nil {
				return nil, err
			}
		}
	}

	meta, err := dev.metaJSON()
	if err != nil {
		return nil, err
	}
	if err := q.UpsertUser(ctx, claims.Roll); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	row, err := q.CreateEntryLog(ctx, db.CreateEntryLogParams{
		ID:         entryID,
		Roll:       claims.Roll,
		Status:     string(wire.StatusEntered),
		EntryFlag:  pgText(string(flag)),
		Laptop:     pgTextPtr(claims.Laptop),
		Extra:      rawList(claims.Extra),
		DeviceMeta: meta,
		Source:     pgText(dev.source),
		OS:         pgText(dev.os),
		DeviceID:   pgText(dev.deviceID),
		ScannedAt:  pgTime(ts),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	if opts.TestMode && opts.OverrideCreatedAt != nil {
		if err := q.SetEntryCreatedAt(ctx, db.SetEntryCreatedAtParams{
			ID:        row.ID,
			CreatedAt: pgTime(opts.OverrideCreatedAt.UTC()),
		}); err != nil {
			return nil, fmt.Errorf("failed to backdate entry: %w", err)
		}
	}

	ev := wire.Event{
		Type:       wire.EventEntry,
		EntryID:    uuidString(row.ID),
		Roll:       row.Roll,
		ScannedAt:  wire.NewISOTime(ts),
		Status:     wire.EntryStatus(row.Status),
		EntryFlag:  wire.EntryFlag(row.EntryFlag.String),
		Laptop:     textPtr(row.Laptop),
		Extra:      rawList(row.Extra),
		DeviceMeta: rawObject(row.DeviceMeta),
		DeviceID:   row.DeviceID.String,
		Source:     row.Source.String,
		OS:         row.OS.String,
	}
	if err := emit(ctx, q, ev); err != nil {
		return nil, err
	}

	s.logger.Info("entry recorded",
		zap.String("entry_id", claims.EntryID),
		zap.String("roll", claims.Roll),
		zap.String("entry_flag", string(flag)),
		zap.Int("displaced", len(open)),
	)
	return &Result{
		Allowed:   true,
		Outcome:   OutcomeEntered,
		EntryID:   claims.EntryID,
		Flag:      string(flag),
		Status:    row.Status,
		Displaced: len(open),
		ScannedAt: ts,
	}, nil
}

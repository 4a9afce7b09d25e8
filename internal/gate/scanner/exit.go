package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/token"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// ProcessExit applies an exit-mode scan. Exits are recorded even for expired
// credentials; expiry only marks the device metadata. A scan that resolves
// no entry is still recorded, flagged ORPHAN_EXIT, so nobody is trapped
// inside by a lost or mangled QR.
func (s *Scanner) ProcessExit(ctx context.Context, claims *token.Claims, expired bool, opts ScanOptions) (*Result, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	res, err := s.processExit(ctx, db.New(tx), claims, expired, opts)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return res, nil
}

func (s *Scanner) processExit(ctx context.Context, q db.Querier, claims *token.Claims, expired bool, opts ScanOptions) (*Result, error) {
	ts := s.scanTime(opts)
	dev := buildDeviceContext(claims, s.deviceID, expired, opts.TestMode)

	// Resolve the entry being closed: by the credential's entryId first,
	// regardless of status; an emergency credential may instead close the
	// roll's latest open entry.
	var entry db.EntryLog
	haveEntry := false
	if claims.EntryID != "" {
		entryID, err := pgUUID(claims.EntryID)
		if err != nil {
			return nil, fmt.Errorf("invalid entryId claim: %w", err)
		}
		row, err := q.GetEntryLog(ctx, entryID)
		switch {
		case err == nil:
			entry = row
			haveEntry = true
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return nil, fmt.Errorf("failed to look up entry: %w", err)
		}
	}
	if !haveEntry && claims.Type == token.TypeEmergency {
		row, err := q.LatestEnteredByRoll(ctx, claims.Roll)
		switch {
		case err == nil:
			entry = row
			haveEntry = true
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return nil, fmt.Errorf("failed to find open entry: %w", err)
		}
	}

	if haveEntry {
		dup, err := q.HasExitForEntry(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing exit: %w", err)
		}
		if dup {
			return s.exitDuplicate(ctx, q, claims, dev, entry, ts, opts)
		}
	}

	flag := wire.ExitFlagNormal
	switch {
	case !haveEntry:
		flag = wire.ExitFlagOrphan
		if claims.EntryID != "" {
			dev.meta["claimedEntryId"] = claims.EntryID
		}
	case claims.Type == token.TypeEmergency:
		flag = wire.ExitFlagEmergency
	}

	var entryRef pgtype.UUID
	if haveEntry {
		entryRef = entry.ID
	}
	exitRow, err := s.createExit(ctx, q, claims, dev, entryRef, flag, ts, opts)
	if err != nil {
		return nil, err
	}

	if haveEntry {
		if err := q.MarkEntryExited(ctx, entry.ID); err != nil {
			return nil, fmt.Errorf("failed to mark entry exited: %w", err)
		}
		// The status flip syncs with the entry's original scan time; the
		// exit time belongs to the exit row alone.
		entryScanned := ts
		if entry.ScannedAt.Valid {
			entryScanned = entry.ScannedAt.Time
		}
		ev := wire.Event{
			Type:       wire.EventEntry,
			EntryID:    uuidString(entry.ID),
			Roll:       entry.Roll,
			ScannedAt:  wire.NewISOTime(entryScanned),
			Status:     wire.StatusExited,
			EntryFlag:  wire.EntryFlag(entry.EntryFlag.String),
			Laptop:     textPtr(entry.Laptop),
			Extra:      rawList(entry.Extra),
			DeviceMeta: rawObject(entry.DeviceMeta),
			DeviceID:   entry.DeviceID.String,
			Source:     entry.Source.String,
			OS:         entry.OS.String,
		}
		if err := emit(ctx, q, ev); err != nil {
			return nil, err
		}
	}

	if err := emitExit(ctx, q, exitRow); err != nil {
		return nil, err
	}

	s.logger.Info("exit recorded",
		zap.String("exit_id", uuidString(exitRow.ID)),
		zap.String("roll", claims.Roll),
		zap.String("exit_flag", string(flag)),
		zap.String("entry_id", uuidString(entryRef)),
	)
	return &Result{
		Allowed:   true,
		Outcome:   OutcomeExited,
		EntryID:   uuidString(entryRef),
		ExitID:    uuidString(exitRow.ID),
		Flag:      string(flag),
		ScannedAt: ts,
	}, nil
}

// exitDuplicate records a second exit against an entry that already has one.
// The entry row is left untouched and only the exit event syncs.
func (s *Scanner) exitDuplicate(ctx context.Context, q db.Querier, claims *token.Claims, dev deviceContext, entry db.EntryLog, ts time.Time, opts ScanOptions) (*Result, error) {
	exitRow, err := s.createExit(ctx, q, claims, dev, entry.ID, wire.ExitFlagDuplicate, ts, opts)
	if err != nil {
		return nil, err
	}
	if err := emitExit(ctx, q, exitRow); err != nil {
		return nil, err
	}

	s.logger.Info("duplicate exit recorded",
		zap.String("exit_id", uuidString(exitRow.ID)),
		zap.String("entry_id", uuidString(entry.ID)),
		zap.String("roll", claims.Roll),
	)
	return &Result{
		Allowed:   true,
		Outcome:   OutcomeDuplicateExit,
		EntryID:   uuidString(entry.ID),
		ExitID:    uuidString(exitRow.ID),
		Flag:      string(wire.ExitFlagDuplicate),
		ScannedAt: ts,
	}, nil
}

func (s *Scanner) createExit(ctx context.Context, q db.Querier, claims *token.Claims, dev deviceContext, entryRef pgtype.UUID, flag wire.ExitFlag, ts time.Time, opts ScanOptions) (db.ExitLog, error) {
	meta, err := dev.metaJSON()
	if err != nil {
		return db.ExitLog{}, err
	}
	newID, err := uuid.NewV7()
	if err != nil {
		return db.ExitLog{}, fmt.Errorf("failed to generate exit ID: %w", err)
	}
	var exitID pgtype.UUID
	if err := exitID.Scan(newID.String()); err != nil {
		return db.ExitLog{}, fmt.Errorf("failed to convert exit ID: %w", err)
	}

	if err := q.UpsertUser(ctx, claims.Roll); err != nil {
		return db.ExitLog{}, fmt.Errorf("failed to upsert user: %w", err)
	}
	row, err := q.CreateExitLog(ctx, db.CreateExitLogParams{
		ID:         exitID,
		Roll:       claims.Roll,
		EntryID:    entryRef,
		ExitFlag:   string(flag),
		Laptop:     pgTextPtr(claims.Laptop),
		Extra:      rawList(claims.Extra),
		DeviceMeta: meta,
		Source:     pgText(dev.source),
		OS:         pgText(dev.os),
		DeviceID:   pgText(dev.deviceID),
		ScannedAt:  pgTime(ts),
	})
	if err != nil {
		return db.ExitLog{}, fmt.Errorf("failed to create exit: %w", err)
	}
	if opts.TestMode && opts.OverrideCreatedAt != nil {
		if err := q.SetExitCreatedAt(ctx, db.SetExitCreatedAtParams{
			ID:        row.ID,
			CreatedAt: pgTime(opts.OverrideCreatedAt.UTC()),
		}); err != nil {
			return db.ExitLog{}, fmt.Errorf("failed to backdate exit: %w", err)
		}
	}
	return row, nil
}

func emitExit(ctx context.Context, q db.Querier, row db.ExitLog) error {
	var scanned *wire.ISOTime
	if row.ScannedAt.Valid {
		scanned = wire.NewISOTime(row.ScannedAt.Time)
	}
	ev := wire.Event{
		Type:       wire.EventExit,
		ExitID:     uuidString(row.ID),
		EntryID:    uuidString(row.EntryID),
		Roll:       row.Roll,
		ScannedAt:  scanned,
		ExitFlag:   wire.ExitFlag(row.ExitFlag),
		Laptop:     textPtr(row.Laptop),
		Extra:      rawList(row.Extra),
		DeviceMeta: rawObject(row.DeviceMeta),
		DeviceID:   row.DeviceID.String,
		Source:     row.Source.String,
		OS:         row.OS.String,
	}
	return emit(ctx, q, ev)
}

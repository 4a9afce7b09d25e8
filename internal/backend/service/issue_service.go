package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/token"
)

var ErrNoOpenEntry = errors.New("no active entry found for this roll")

// Field limits mirror the column widths in the schema.
const (
	maxRollLen   = 50
	maxLaptopLen = 150
)

// ValidationError describes malformed issuance input. Handlers map it to a
// 400 response carrying the message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IssuedCredential pairs a signed gate credential with the entry it
// authorises.
type IssuedCredential struct {
	EntryID string
	Token   string
	TTL     time.Duration
}

// --- Service Interface ---

type IssueService interface {
	// GenerateEntryToken creates a PENDING entry and signs a credential for
	// it. The credential authorises one entry scan and the matching exit.
	GenerateEntryToken(ctx context.Context, roll string, laptop *string, extra json.RawMessage) (*IssuedCredential, error)
	// GenerateEmergencyExit signs a short-lived exit credential against the
	// roll's latest open entry, for when the entry QR is not available.
	// Returns ErrNoOpenEntry when the roll has nothing open.
	GenerateEmergencyExit(ctx context.Context, roll string) (*IssuedCredential, error)
}

// --- Service Implementation ---

type issueService struct {
	querier db.Querier
	signer  *token.Signer
	logger  *zap.Logger
}

func NewIssueService(q db.Querier, signer *token.Signer, logger *zap.Logger) IssueService {
	return &issueService{querier: q, signer: signer, logger: logger}
}

func (s *issueService) GenerateEntryToken(ctx context.Context, roll string, laptop *string, extra json.RawMessage) (*IssuedCredential, error) {
	if err := validateIssueInput(roll, laptop, extra); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entry id: %w", err)
	}
	entryID, err := pgUUID(id.String())
	if err != nil {
		return nil, err
	}

	row, err := s.querier.CreateIssuedEntry(ctx, db.CreateIssuedEntryParams{
		ID:     entryID,
		Roll:   roll,
		Laptop: pgTextPtr(laptop),
		Extra:  rawList(extra),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create entry for %s: %w", roll, err)
	}

	signed, err := s.signer.SignEntry(token.Claims{
		EntryID: uuidString(row.ID),
		Roll:    roll,
		Laptop:  laptop,
		Extra:   rawList(extra),
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to sign entry token: %w", err)
	}

	s.logger.Info("issued entry credential",
		zap.String("entry_id", uuidString(row.ID)),
		zap.String("roll", roll),
	)
	return &IssuedCredential{
		EntryID: uuidString(row.ID),
		Token:   signed,
		TTL:     token.EntryTokenTTL,
	}, nil
}

func (s *issueService) GenerateEmergencyExit(ctx context.Context, roll string) (*IssuedCredential, error) {
	if roll == "" {
		return nil, &ValidationError{Message: "roll is required"}
	}

	entry, err := s.querier.LatestEnteredByRoll(ctx, roll)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoOpenEntry
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up open entry for %s: %w", roll, err)
	}

	signed, err := s.signer.SignEmergencyExit(token.Claims{
		EntryID: uuidString(entry.ID),
		Roll:    roll,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign emergency exit token: %w", err)
	}

	s.logger.Info("issued emergency exit credential",
		zap.String("entry_id", uuidString(entry.ID)),
		zap.String("roll", roll),
	)
	return &IssuedCredential{
		EntryID: uuidString(entry.ID),
		Token:   signed,
		TTL:     token.EmergencyExitTTL,
	}, nil
}

func validateIssueInput(roll string, laptop *string, extra json.RawMessage) error {
	if roll == "" {
		return &ValidationError{Message: "roll is required"}
	}
	if len(roll) > maxRollLen {
		return &ValidationError{Message: fmt.Sprintf("roll too long (max %d)", maxRollLen)}
	}
	if laptop != nil && len(*laptop) > maxLaptopLen {
		return &ValidationError{Message: fmt.Sprintf("laptop too long (max %d)", maxLaptopLen)}
	}
	if !isRawList(extra) {
		return &ValidationError{Message: "extra must be a list"}
	}
	return nil
}

func isRawList(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	return trimmed[0] == '['
}

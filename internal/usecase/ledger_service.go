package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	idgen "github.com/scorepadhq/scorepad/internal/platform/id"
)

// LedgerService accepts and retrieves per-round score entries, keeping round
// numbers gap-free and every committed round complete for the roster it was
// saved against.
type LedgerService struct {
	setRepo   gameset.Repository
	entryRepo ledger.Repository
	idGen     idgen.Generator
	now       func() time.Time
}

func NewLedgerService(setRepo gameset.Repository, entryRepo ledger.Repository, idGen idgen.Generator) *LedgerService {
	return &LedgerService{
		setRepo:   setRepo,
		entryRepo: entryRepo,
		idGen:     idGen,
		now:       time.Now,
	}
}

// NextRoundNumber is always derived from the stored entries, never from a
// client-held counter, so a client that reloaded after another admin saved a
// round sees the fresh number.
func (s *LedgerService) NextRoundNumber(ctx context.Context, gameSetID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.NextRoundNumber")
	defer span.End()

	gameSetID = strings.TrimSpace(gameSetID)
	if gameSetID == "" {
		return 0, fmt.Errorf("%w: set id is required", ErrInvalidInput)
	}

	maxRound, err := s.entryRepo.MaxRoundNumber(ctx, gameSetID)
	if err != nil {
		return 0, fmt.Errorf("max round number: %w", err)
	}
	return maxRound + 1, nil
}

// CommitRound persists one full round as a single unit. Any precondition
// failure leaves the ledger untouched. roundNumber must equal the current
// NextRoundNumber; losing a race for it surfaces as the stale-round conflict
// and the caller retries from a fresh number.
func (s *LedgerService) CommitRound(
	ctx context.Context,
	gameSetID string,
	roundNumber int,
	draft []ledger.DraftScore,
	actorID string,
) ([]ledger.ScoreEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.CommitRound")
	defer span.End()

	gameSetID = strings.TrimSpace(gameSetID)
	actorID = strings.TrimSpace(actorID)
	if gameSetID == "" {
		return nil, fmt.Errorf("%w: set id is required", ErrInvalidInput)
	}
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	if roundNumber < 1 {
		return nil, fmt.Errorf("%w: round number must be positive", ErrInvalidInput)
	}

	set, exists, err := s.setRepo.GetByID(ctx, gameSetID)
	if err != nil {
		return nil, fmt.Errorf("get game set: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %q", ErrSetNotFound, gameSetID)
	}

	if err := validateDraft(set, draft); err != nil {
		return nil, err
	}

	next, err := s.NextRoundNumber(ctx, gameSetID)
	if err != nil {
		return nil, err
	}
	if roundNumber != next {
		return nil, fmt.Errorf("%w: got %d, next is %d", ErrStaleRound, roundNumber, next)
	}

	committedAt := s.now().UTC()
	entries := make([]ledger.ScoreEntry, 0, len(draft))
	for _, d := range draft {
		entryID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate entry id: %w", err)
		}
		entries = append(entries, ledger.ScoreEntry{
			ID:          entryID,
			GameSetID:   gameSetID,
			PlayerID:    d.PlayerID,
			RoundNumber: roundNumber,
			Score:       d.Score,
			CreatorID:   actorID,
			CreatedAt:   committedAt,
		})
	}

	if err := s.entryRepo.InsertRound(ctx, entries); err != nil {
		var conflict *ledger.RoundConflictError
		if errors.As(err, &conflict) || isDuplicateConstraintError(err) {
			return nil, fmt.Errorf("%w: round %d was committed by another writer", ErrStaleRound, roundNumber)
		}
		return nil, fmt.Errorf("insert round: %w", err)
	}
	return entries, nil
}

func (s *LedgerService) ListEntries(ctx context.Context, gameSetID string) ([]ledger.ScoreEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.ListEntries")
	defer span.End()

	gameSetID = strings.TrimSpace(gameSetID)
	if gameSetID == "" {
		return nil, fmt.Errorf("%w: set id is required", ErrInvalidInput)
	}

	entries, err := s.entryRepo.ListByGameSet(ctx, gameSetID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// validateDraft checks the draft covers the roster exactly once per player
// with every score in range.
func validateDraft(set gameset.GameSet, draft []ledger.DraftScore) error {
	if len(draft) != len(set.PlayerIDs) {
		return fmt.Errorf("%w: draft has %d scores, roster has %d players",
			ErrIncompleteRound, len(draft), len(set.PlayerIDs))
	}

	seen := make(map[string]struct{}, len(draft))
	for _, d := range draft {
		if !set.HasPlayer(d.PlayerID) {
			return fmt.Errorf("%w: player %q is not on the roster", ErrIncompleteRound, d.PlayerID)
		}
		if _, dup := seen[d.PlayerID]; dup {
			return fmt.Errorf("%w: duplicate score for player %q", ErrIncompleteRound, d.PlayerID)
		}
		seen[d.PlayerID] = struct{}{}
		if !ledger.ScoreInRange(d.Score) {
			return fmt.Errorf("%w: %d is outside [%d, %d]",
				ErrScoreOutOfRange, d.Score, ledger.ScoreMin, ledger.ScoreMax)
		}
	}
	return nil
}

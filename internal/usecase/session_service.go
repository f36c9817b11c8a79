package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	"github.com/scorepadhq/scorepad/internal/domain/player"
)

// SetSnapshot is everything the UI needs to render a set screen, assembled in
// one call. Snapshots are immutable: the caller holds the latest one and
// replaces it wholesale after every save, never mutating it in place.
type SetSnapshot struct {
	GameSet       gameset.GameSet
	Roster        []player.Player
	Entries       []ledger.ScoreEntry
	Leaderboard   []ledger.Standing
	NextRound     int
	IsViewerAdmin bool
}

// SavedRound is the result of committing one round: the durable entries plus
// the re-aggregated leaderboard, so the caller never needs a follow-up fetch.
type SavedRound struct {
	Entries     []ledger.ScoreEntry
	Leaderboard []ledger.Standing
}

// SessionService is the facade the UI talks to. It composes the registry, the
// ledger and the aggregator into the three operations a set screen performs.
type SessionService struct {
	setRepo    gameset.Repository
	playerRepo player.Repository
	ledgerSvc  *LedgerService
}

func NewSessionService(setRepo gameset.Repository, playerRepo player.Repository, ledgerSvc *LedgerService) *SessionService {
	return &SessionService{
		setRepo:    setRepo,
		playerRepo: playerRepo,
		ledgerSvc:  ledgerSvc,
	}
}

// LoadSet performs the single composed read for a set screen. Roster and
// ledger entries are independent reads, so they run concurrently.
func (s *SessionService) LoadSet(ctx context.Context, gameSetID, viewerID string) (SetSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.LoadSet")
	defer span.End()

	gameSetID = strings.TrimSpace(gameSetID)
	if gameSetID == "" {
		return SetSnapshot{}, fmt.Errorf("%w: set id is required", ErrInvalidInput)
	}

	set, exists, err := s.setRepo.GetByID(ctx, gameSetID)
	if err != nil {
		return SetSnapshot{}, fmt.Errorf("get game set: %w", err)
	}
	if !exists {
		return SetSnapshot{}, fmt.Errorf("%w: id %q", ErrSetNotFound, gameSetID)
	}

	var (
		playersByID map[string]player.Player
		entries     []ledger.ScoreEntry
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		playersByID, err = s.playerRepo.GetByIDs(ctx, set.PlayerIDs)
		if err != nil {
			return fmt.Errorf("get roster players: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		entries, err = s.ledgerSvc.ListEntries(ctx, set.ID)
		return err
	})
	if err := p.Wait(); err != nil {
		return SetSnapshot{}, err
	}

	roster := rosterInOrder(set, playersByID)
	maxRound := 0
	for _, e := range entries {
		if e.RoundNumber > maxRound {
			maxRound = e.RoundNumber
		}
	}

	return SetSnapshot{
		GameSet:       set,
		Roster:        roster,
		Entries:       entries,
		Leaderboard:   ledger.Aggregate(roster, entries),
		NextRound:     maxRound + 1,
		IsViewerAdmin: set.IsAdmin(strings.TrimSpace(viewerID)),
	}, nil
}

// PrepareRoundDraft builds the zero-filled editable draft for the next round.
// The draft lives in the client; nothing is persisted until SaveRound.
func (s *SessionService) PrepareRoundDraft(roster []player.Player) []ledger.DraftScore {
	draft := make([]ledger.DraftScore, 0, len(roster))
	for _, p := range roster {
		draft = append(draft, ledger.DraftScore{PlayerID: p.ID, Score: 0})
	}
	return draft
}

// SaveRound commits the draft as one atomic round and returns the fresh
// entry list with the recomputed leaderboard.
func (s *SessionService) SaveRound(
	ctx context.Context,
	gameSetID string,
	roundNumber int,
	draft []ledger.DraftScore,
	actorID string,
) (SavedRound, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.SaveRound")
	defer span.End()

	if _, err := s.ledgerSvc.CommitRound(ctx, gameSetID, roundNumber, draft, actorID); err != nil {
		return SavedRound{}, err
	}

	set, exists, err := s.setRepo.GetByID(ctx, gameSetID)
	if err != nil {
		return SavedRound{}, fmt.Errorf("get game set: %w", err)
	}
	if !exists {
		return SavedRound{}, fmt.Errorf("%w: id %q", ErrSetNotFound, gameSetID)
	}

	entries, err := s.ledgerSvc.ListEntries(ctx, gameSetID)
	if err != nil {
		return SavedRound{}, err
	}
	playersByID, err := s.playerRepo.GetByIDs(ctx, set.PlayerIDs)
	if err != nil {
		return SavedRound{}, fmt.Errorf("get roster players: %w", err)
	}

	roster := rosterInOrder(set, playersByID)
	return SavedRound{
		Entries:     entries,
		Leaderboard: ledger.Aggregate(roster, entries),
	}, nil
}

// rosterInOrder keeps the set's player ordering, dropping ids the registry
// no longer knows rather than fabricating placeholders.
func rosterInOrder(set gameset.GameSet, playersByID map[string]player.Player) []player.Player {
	roster := make([]player.Player, 0, len(set.PlayerIDs))
	for _, id := range set.PlayerIDs {
		if p, ok := playersByID[id]; ok {
			roster = append(roster, p)
		}
	}
	return roster
}

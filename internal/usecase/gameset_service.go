package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	"github.com/scorepadhq/scorepad/internal/domain/player"
	idgen "github.com/scorepadhq/scorepad/internal/platform/id"
)

// A set needs at least two players to be worth scoring.
const minRosterSize = 2

type CreateGameSetInput struct {
	Name      string
	CreatorID string
	PlayerIDs []string
}

type GameSetService struct {
	setRepo    gameset.Repository
	playerRepo player.Repository
	entryRepo  ledger.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewGameSetService(
	setRepo gameset.Repository,
	playerRepo player.Repository,
	entryRepo ledger.Repository,
	idGen idgen.Generator,
) *GameSetService {
	return &GameSetService{
		setRepo:    setRepo,
		playerRepo: playerRepo,
		entryRepo:  entryRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *GameSetService) CreateGameSet(ctx context.Context, input CreateGameSetInput) (gameset.GameSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSetService.CreateGameSet")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CreatorID = strings.TrimSpace(input.CreatorID)
	if input.Name == "" {
		return gameset.GameSet{}, fmt.Errorf("%w: set name is required", ErrInvalidInput)
	}
	if input.CreatorID == "" {
		return gameset.GameSet{}, fmt.Errorf("%w: creator id is required", ErrInvalidInput)
	}

	playerIDs := dedupeIDs(input.PlayerIDs)
	if len(playerIDs) < minRosterSize {
		return gameset.GameSet{}, fmt.Errorf("%w: a set needs at least %d players", ErrInvalidInput, minRosterSize)
	}

	known, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("resolve roster players: %w", err)
	}
	for _, id := range playerIDs {
		if _, ok := known[id]; !ok {
			return gameset.GameSet{}, fmt.Errorf("%w: unknown player id %q", ErrInvalidInput, id)
		}
	}

	setID, err := s.idGen.NewID()
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("generate set id: %w", err)
	}

	set := gameset.GameSet{
		ID:        setID,
		Name:      input.Name,
		CreatorID: input.CreatorID,
		AdminIDs:  nil,
		PlayerIDs: playerIDs,
		CreatedAt: s.now().UTC(),
	}
	if err := s.setRepo.Create(ctx, set); err != nil {
		return gameset.GameSet{}, fmt.Errorf("create game set: %w", err)
	}
	return set, nil
}

func (s *GameSetService) ListGameSets(ctx context.Context) ([]gameset.GameSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSetService.ListGameSets")
	defer span.End()

	sets, err := s.setRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game sets: %w", err)
	}
	return sets, nil
}

func (s *GameSetService) GetGameSet(ctx context.Context, setID string) (gameset.GameSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSetService.GetGameSet")
	defer span.End()

	setID = strings.TrimSpace(setID)
	if setID == "" {
		return gameset.GameSet{}, fmt.Errorf("%w: set id is required", ErrInvalidInput)
	}

	set, exists, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("get game set: %w", err)
	}
	if !exists {
		return gameset.GameSet{}, fmt.Errorf("%w: id %q", ErrSetNotFound, setID)
	}
	return set, nil
}

// DeleteGameSet removes the set and its ledger entries. Only admins may
// delete; the set row goes first so a crash between the two deletes never
// leaves entries pointing at a live set.
func (s *GameSetService) DeleteGameSet(ctx context.Context, setID, actorID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSetService.DeleteGameSet")
	defer span.End()

	set, err := s.GetGameSet(ctx, setID)
	if err != nil {
		return err
	}
	if !set.IsAdmin(strings.TrimSpace(actorID)) {
		return fmt.Errorf("%w: only admins can delete a set", ErrUnauthorized)
	}

	if err := s.setRepo.Delete(ctx, set.ID); err != nil {
		return fmt.Errorf("delete game set: %w", err)
	}
	if err := s.entryRepo.DeleteByGameSet(ctx, set.ID); err != nil {
		return fmt.Errorf("delete set entries: %w", err)
	}
	return nil
}

// AddPlayer appends a registered player to the roster. Past rounds are not
// backfilled; the player starts scoring from the next committed round.
func (s *GameSetService) AddPlayer(ctx context.Context, setID, actorID, playerID string) (gameset.GameSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSetService.AddPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return gameset.GameSet{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	set, err := s.GetGameSet(ctx, setID)
	if err != nil {
		return gameset.GameSet{}, err
	}
	if !set.IsAdmin(strings.TrimSpace(actorID)) {
		return gameset.GameSet{}, fmt.Errorf("%w: only admins can change the roster", ErrUnauthorized)
	}
	if set.HasPlayer(playerID) {
		return gameset.GameSet{}, fmt.Errorf("%w: player already on the roster", ErrConflict)
	}

	known, err := s.playerRepo.GetByIDs(ctx, []string{playerID})
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("resolve player: %w", err)
	}
	if _, ok := known[playerID]; !ok {
		return gameset.GameSet{}, fmt.Errorf("%w: unknown player id %q", ErrInvalidInput, playerID)
	}

	updated, err := s.setRepo.UpdatePlayers(ctx, set.ID, append(set.PlayerIDs, playerID))
	if err != nil {
		return gameset.GameSet{}, fmt.Errorf("update roster: %w", err)
	}
	return updated, nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/scorepadhq/scorepad/internal/domain/player"
	idgen "github.com/scorepadhq/scorepad/internal/platform/id"
)

// PlayerService is the registry of durable player identities. Players are
// created once and never deleted; sets reference them by id.
type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, name string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		return player.Player{}, fmt.Errorf("check player name: %w", err)
	}
	if exists {
		return player.Player{}, fmt.Errorf("%w: player %q", ErrDuplicateName, name)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{
		ID:        playerID,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		if isDuplicateConstraintError(err) {
			return player.Player{}, fmt.Errorf("%w: player %q", ErrDuplicateName, name)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return p, nil
}

func (s *PlayerService) GetPlayersByIDs(ctx context.Context, ids []string) (map[string]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayersByIDs")
	defer span.End()

	if len(ids) == 0 {
		return map[string]player.Player{}, nil
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	return players, nil
}

func isDuplicateConstraintError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate key value violates unique constraint")
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
)

type GameSetRepository struct {
	mu    sync.RWMutex
	items map[string]gameset.GameSet
}

func NewGameSetRepository() *GameSetRepository {
	return &GameSetRepository{items: make(map[string]gameset.GameSet)}
}

func (r *GameSetRepository) Create(_ context.Context, set gameset.GameSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[set.ID]; exists {
		return fmt.Errorf("game set %s already exists", set.ID)
	}
	r.items[set.ID] = cloneSet(set)
	return nil
}

func (r *GameSetRepository) GetByID(_ context.Context, setID string) (gameset.GameSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.items[setID]
	if !ok {
		return gameset.GameSet{}, false, nil
	}
	return cloneSet(set), true, nil
}

func (r *GameSetRepository) List(_ context.Context) ([]gameset.GameSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameset.GameSet, 0, len(r.items))
	for _, set := range r.items {
		out = append(out, cloneSet(set))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *GameSetRepository) UpdateAdmins(_ context.Context, setID string, adminIDs []string) (gameset.GameSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.items[setID]
	if !ok {
		return gameset.GameSet{}, fmt.Errorf("game set %s not found", setID)
	}
	set.AdminIDs = append([]string(nil), adminIDs...)
	r.items[setID] = set
	return cloneSet(set), nil
}

func (r *GameSetRepository) UpdatePlayers(_ context.Context, setID string, playerIDs []string) (gameset.GameSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.items[setID]
	if !ok {
		return gameset.GameSet{}, fmt.Errorf("game set %s not found", setID)
	}
	set.PlayerIDs = append([]string(nil), playerIDs...)
	r.items[setID] = set
	return cloneSet(set), nil
}

func (r *GameSetRepository) Delete(_ context.Context, setID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, setID)
	return nil
}

func cloneSet(set gameset.GameSet) gameset.GameSet {
	set.AdminIDs = append([]string(nil), set.AdminIDs...)
	set.PlayerIDs = append([]string(nil), set.PlayerIDs...)
	return set
}

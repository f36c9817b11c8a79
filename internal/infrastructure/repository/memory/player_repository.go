package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/scorepadhq/scorepad/internal/domain/player"
)

// PlayerRepository is the in-memory registry used in dev mode and tests.
type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[string]player.Player)}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if strings.ToLower(p.Name) == name {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []string) (map[string]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]player.Player, len(ids))
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/identity"
	"github.com/scorepadhq/scorepad/internal/domain/player"
	"github.com/scorepadhq/scorepad/internal/infrastructure/repository/memory"
)

type seqIDGenerator struct {
	prefix string
	next   int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

type fakeResolver struct {
	emailToID map[string]string
	users     map[string]identity.User
	err       error
}

func (r *fakeResolver) ResolveEmail(_ context.Context, email string) (string, bool, error) {
	if r.err != nil {
		return "", false, r.err
	}
	id, ok := r.emailToID[email]
	return id, ok, nil
}

func (r *fakeResolver) FetchUsersByIDs(_ context.Context, ids []string) (map[string]identity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]identity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// seedPlayers registers n players named player-1..player-n and returns their ids.
func seedPlayers(t *testing.T, repo *memory.PlayerRepository, n int) []string {
	t.Helper()

	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("player-%d", i)
		err := repo.Create(t.Context(), player.Player{
			ID:        id,
			Name:      fmt.Sprintf("Player %d", i),
			CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("seed player %s: %v", id, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func seedSet(t *testing.T, repo *memory.GameSetRepository, set gameset.GameSet) gameset.GameSet {
	t.Helper()

	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	if err := repo.Create(t.Context(), set); err != nil {
		t.Fatalf("seed set %s: %v", set.ID, err)
	}
	return set
}

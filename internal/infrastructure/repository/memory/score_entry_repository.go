package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorepadhq/scorepad/internal/domain/ledger"
)

// ScoreEntryRepository mirrors the postgres uniqueness constraint on
// (game_set_id, player_id, round_number) so tests exercise the same race
// behavior the database enforces.
type ScoreEntryRepository struct {
	mu      sync.RWMutex
	entries []ledger.ScoreEntry
	byKey   map[entryKey]struct{}
}

type entryKey struct {
	gameSetID   string
	playerID    string
	roundNumber int
}

func NewScoreEntryRepository() *ScoreEntryRepository {
	return &ScoreEntryRepository{byKey: make(map[entryKey]struct{})}
}

func (r *ScoreEntryRepository) MaxRoundNumber(_ context.Context, gameSetID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	maxRound := 0
	for _, e := range r.entries {
		if e.GameSetID == gameSetID && e.RoundNumber > maxRound {
			maxRound = e.RoundNumber
		}
	}
	return maxRound, nil
}

func (r *ScoreEntryRepository) InsertRound(_ context.Context, entries []ledger.ScoreEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check the whole batch before touching state: all-or-nothing.
	for _, e := range entries {
		key := entryKey{gameSetID: e.GameSetID, playerID: e.PlayerID, roundNumber: e.RoundNumber}
		if _, dup := r.byKey[key]; dup {
			return &ledger.RoundConflictError{GameSetID: e.GameSetID, RoundNumber: e.RoundNumber}
		}
	}
	for _, e := range entries {
		r.byKey[entryKey{gameSetID: e.GameSetID, playerID: e.PlayerID, roundNumber: e.RoundNumber}] = struct{}{}
		r.entries = append(r.entries, e)
	}
	return nil
}

func (r *ScoreEntryRepository) ListByGameSet(_ context.Context, gameSetID string) ([]ledger.ScoreEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ledger.ScoreEntry, 0)
	for _, e := range r.entries {
		if e.GameSetID == gameSetID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RoundNumber < out[j].RoundNumber
	})
	return out, nil
}

func (r *ScoreEntryRepository) DeleteByGameSet(_ context.Context, gameSetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.GameSetID == gameSetID {
			delete(r.byKey, entryKey{gameSetID: e.GameSetID, playerID: e.PlayerID, roundNumber: e.RoundNumber})
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return nil
}

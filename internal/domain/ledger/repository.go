package ledger

import (
	"context"
	"fmt"
)

type Repository interface {
	// MaxRoundNumber returns the highest committed round number for the set,
	// or 0 when the set has no entries.
	MaxRoundNumber(ctx context.Context, gameSetID string) (int, error)
	// InsertRound stores all entries of one round as a single unit. A partial
	// insert must not survive; implementations back this with a transaction
	// and a uniqueness constraint on (game_set_id, player_id, round_number).
	InsertRound(ctx context.Context, entries []ScoreEntry) error
	// ListByGameSet returns entries ordered by round number ascending.
	ListByGameSet(ctx context.Context, gameSetID string) ([]ScoreEntry, error)
	DeleteByGameSet(ctx context.Context, gameSetID string) error
}

// RoundConflictError is returned by InsertRound when the storage uniqueness
// constraint on (game_set_id, player_id, round_number) rejects the write,
// i.e. another writer already committed that round.
type RoundConflictError struct {
	GameSetID   string
	RoundNumber int
}

func (e *RoundConflictError) Error() string {
	return fmt.Sprintf("round %d already committed for set %s", e.RoundNumber, e.GameSetID)
}

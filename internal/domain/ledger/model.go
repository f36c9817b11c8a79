package ledger

import "time"

// Score bounds for a single round entry.
const (
	ScoreMin = -10
	ScoreMax = 40
)

// ScoreEntry is one committed per-player score for one round of a set.
// Entries are immutable once stored; there is no update path for past rounds.
type ScoreEntry struct {
	ID          string
	GameSetID   string
	PlayerID    string
	RoundNumber int
	Score       int
	CreatorID   string
	CreatedAt   time.Time
}

// DraftScore is a locally edited, not-yet-durable score. Holding drafts in a
// distinct type keeps "saved" and "still editable" apart in the type system
// rather than behind a runtime flag.
type DraftScore struct {
	PlayerID string
	Score    int
}

// ScoreInRange reports whether score is within the allowed per-round bounds.
func ScoreInRange(score int) bool {
	return score >= ScoreMin && score <= ScoreMax
}

package gameset

import "time"

// GameSet is one scoring session for a recurring group of players.
//
// CreatorID never changes for the lifetime of the set and is authorized as an
// admin whether or not it appears in AdminIDs; IsAdmin is the only place that
// rule lives. PlayerIDs keeps roster order, which is also the leaderboard
// tie-break order.
type GameSet struct {
	ID        string
	Name      string
	CreatorID string
	AdminIDs  []string
	PlayerIDs []string
	CreatedAt time.Time
}

// IsAdmin reports whether userID may mutate the set.
func (s GameSet) IsAdmin(userID string) bool {
	if userID == "" {
		return false
	}
	if userID == s.CreatorID {
		return true
	}
	for _, id := range s.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasPlayer reports whether playerID is on the roster.
func (s GameSet) HasPlayer(playerID string) bool {
	for _, id := range s.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

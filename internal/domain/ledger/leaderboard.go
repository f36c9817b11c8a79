package ledger

import (
	"sort"

	"github.com/scorepadhq/scorepad/internal/domain/player"
)

// Standing is one leaderboard row: a roster player and their cumulative total.
type Standing struct {
	Player player.Player
	Total  int
}

// Aggregate computes the ranked leaderboard for a roster from the full entry
// list. Every roster player appears, including players with no entries yet
// (total 0). Entries for players no longer on the roster are ignored.
//
// The result is ordered by total descending; equal totals keep roster order.
// The fold plus the stable sort make the output deterministic for identical
// inputs and independent of entry ordering, so recomputing after every save
// never reshuffles tied players. Totals are always recomputed from scratch
// here rather than kept incrementally, so they cannot drift from the ledger.
func Aggregate(roster []player.Player, entries []ScoreEntry) []Standing {
	totals := make(map[string]int, len(roster))
	for _, p := range roster {
		totals[p.ID] = 0
	}
	for _, e := range entries {
		if _, ok := totals[e.PlayerID]; !ok {
			continue
		}
		totals[e.PlayerID] += e.Score
	}

	standings := make([]Standing, 0, len(roster))
	for _, p := range roster {
		standings = append(standings, Standing{Player: p, Total: totals[p.ID]})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total > standings[j].Total
	})
	return standings
}

package ledger

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/scorepadhq/scorepad/internal/domain/player"
)

func testRoster() []player.Player {
	return []player.Player{
		{ID: "p1", Name: "Ana"},
		{ID: "p2", Name: "Budi"},
		{ID: "p3", Name: "Citra"},
		{ID: "p4", Name: "Dewi"},
	}
}

func TestAggregate_SumsAndSortsDescending(t *testing.T) {
	entries := []ScoreEntry{
		{PlayerID: "p1", RoundNumber: 1, Score: 10},
		{PlayerID: "p2", RoundNumber: 1, Score: -5},
		{PlayerID: "p3", RoundNumber: 1, Score: 40},
		{PlayerID: "p4", RoundNumber: 1, Score: 0},
		{PlayerID: "p1", RoundNumber: 2, Score: 25},
		{PlayerID: "p2", RoundNumber: 2, Score: 30},
		{PlayerID: "p3", RoundNumber: 2, Score: -10},
		{PlayerID: "p4", RoundNumber: 2, Score: 5},
	}

	standings := Aggregate(testRoster(), entries)
	if len(standings) != 4 {
		t.Fatalf("expected 4 standings, got %d", len(standings))
	}

	wantOrder := []string{"p1", "p3", "p2", "p4"}
	wantTotals := []int{35, 30, 25, 5}
	for i, s := range standings {
		if s.Player.ID != wantOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantOrder[i], s.Player.ID)
		}
		if s.Total != wantTotals[i] {
			t.Fatalf("position %d: expected total %d, got %d", i, wantTotals[i], s.Total)
		}
	}
}

func TestAggregate_TiesKeepRosterOrder(t *testing.T) {
	entries := []ScoreEntry{
		{PlayerID: "p1", RoundNumber: 1, Score: 10},
		{PlayerID: "p2", RoundNumber: 1, Score: 10},
		{PlayerID: "p3", RoundNumber: 1, Score: 10},
		{PlayerID: "p4", RoundNumber: 1, Score: 10},
	}

	standings := Aggregate(testRoster(), entries)
	for i, wantID := range []string{"p1", "p2", "p3", "p4"} {
		if standings[i].Player.ID != wantID {
			t.Fatalf("tie position %d: expected roster order %s, got %s", i, wantID, standings[i].Player.ID)
		}
	}
}

func TestAggregate_IndependentOfEntryOrder(t *testing.T) {
	entries := []ScoreEntry{
		{PlayerID: "p1", RoundNumber: 1, Score: 7},
		{PlayerID: "p2", RoundNumber: 1, Score: 7},
		{PlayerID: "p3", RoundNumber: 1, Score: 3},
		{PlayerID: "p4", RoundNumber: 1, Score: 12},
		{PlayerID: "p1", RoundNumber: 2, Score: 5},
		{PlayerID: "p2", RoundNumber: 2, Score: 5},
		{PlayerID: "p3", RoundNumber: 2, Score: 9},
		{PlayerID: "p4", RoundNumber: 2, Score: 0},
	}

	want := Aggregate(testRoster(), entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]ScoreEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Aggregate(testRoster(), shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffle %d changed standings:\nwant: %+v\ngot:  %+v", i, want, got)
		}
	}
}

func TestAggregate_TotalsMatchPerPlayerSums(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		roster := make([]player.Player, 2+rng.Intn(7))
		for i := range roster {
			roster[i] = player.Player{ID: fmt.Sprintf("p%d", i+1), Name: fmt.Sprintf("Player %d", i+1)}
		}

		rounds := rng.Intn(12)
		entries := make([]ScoreEntry, 0, rounds*len(roster))
		wantTotals := make(map[string]int, len(roster))
		for round := 1; round <= rounds; round++ {
			for _, p := range roster {
				score := ScoreMin + rng.Intn(ScoreMax-ScoreMin+1)
				entries = append(entries, ScoreEntry{PlayerID: p.ID, RoundNumber: round, Score: score})
				wantTotals[p.ID] += score
			}
		}

		standings := Aggregate(roster, entries)
		if len(standings) != len(roster) {
			t.Fatalf("trial %d: expected %d standings, got %d", trial, len(roster), len(standings))
		}
		for _, s := range standings {
			if s.Total != wantTotals[s.Player.ID] {
				t.Fatalf("trial %d: %s total %d, want %d", trial, s.Player.ID, s.Total, wantTotals[s.Player.ID])
			}
		}
		for i := 1; i < len(standings); i++ {
			if standings[i].Total > standings[i-1].Total {
				t.Fatalf("trial %d: standings not descending at %d: %+v", trial, i, standings)
			}
		}
	}
}

func TestAggregate_PlayersWithoutEntriesGetZero(t *testing.T) {
	entries := []ScoreEntry{
		{PlayerID: "p2", RoundNumber: 1, Score: -3},
	}

	standings := Aggregate(testRoster(), entries)
	if len(standings) != 4 {
		t.Fatalf("expected every roster player listed, got %d", len(standings))
	}
	// p1, p3, p4 all total 0 and stay in roster order above the negative p2.
	wantOrder := []string{"p1", "p3", "p4", "p2"}
	for i, s := range standings {
		if s.Player.ID != wantOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantOrder[i], s.Player.ID)
		}
	}
}

func TestAggregate_IgnoresEntriesOffRoster(t *testing.T) {
	entries := []ScoreEntry{
		{PlayerID: "p1", RoundNumber: 1, Score: 4},
		{PlayerID: "ghost", RoundNumber: 1, Score: 40},
	}

	standings := Aggregate(testRoster(), entries)
	for _, s := range standings {
		if s.Player.ID == "ghost" {
			t.Fatalf("off-roster player leaked into standings")
		}
	}
	if standings[0].Player.ID != "p1" || standings[0].Total != 4 {
		t.Fatalf("unexpected leader: %+v", standings[0])
	}
}

func TestScoreInRange(t *testing.T) {
	cases := map[int]bool{
		ScoreMin:     true,
		ScoreMax:     true,
		0:            true,
		ScoreMin - 1: false,
		ScoreMax + 1: false,
	}
	for score, want := range cases {
		if got := ScoreInRange(score); got != want {
			t.Fatalf("ScoreInRange(%d) = %v, want %v", score, got, want)
		}
	}
}

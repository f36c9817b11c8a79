package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	"github.com/scorepadhq/scorepad/internal/domain/player"
)

const dashboardWorkerCount = 8

// SetSummary is one dashboard card: a set plus how far it has progressed and
// who currently leads it.
type SetSummary struct {
	GameSet       gameset.GameSet
	RoundsPlayed  int
	Leader        *ledger.Standing
	IsViewerAdmin bool
}

// DashboardService builds the per-viewer overview of all game sets. Each
// set's leaderboard is an independent recomputation, so sets are processed on
// a bounded worker pool instead of serially.
type DashboardService struct {
	setRepo    gameset.Repository
	playerRepo player.Repository
	entryRepo  ledger.Repository
}

func NewDashboardService(setRepo gameset.Repository, playerRepo player.Repository, entryRepo ledger.Repository) *DashboardService {
	return &DashboardService{
		setRepo:    setRepo,
		playerRepo: playerRepo,
		entryRepo:  entryRepo,
	}
}

func (s *DashboardService) ListSetSummaries(ctx context.Context, viewerID string) ([]SetSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.ListSetSummaries")
	defer span.End()

	viewerID = strings.TrimSpace(viewerID)

	sets, err := s.setRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game sets: %w", err)
	}
	if len(sets) == 0 {
		return []SetSummary{}, nil
	}

	type summaryResult struct {
		index   int
		summary SetSummary
		err     error
	}
	results := make(chan summaryResult, len(sets))

	pool, err := ants.NewPool(dashboardWorkerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, set := range sets {
		i, set := i, set
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			summary, err := s.summarize(ctx, set, viewerID)
			results <- summaryResult{index: i, summary: summary, err: err}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit summary task: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]SetSummary, len(sets))
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		out[res.index] = res.summary
	}
	return out, nil
}

func (s *DashboardService) summarize(ctx context.Context, set gameset.GameSet, viewerID string) (SetSummary, error) {
	entries, err := s.entryRepo.ListByGameSet(ctx, set.ID)
	if err != nil {
		return SetSummary{}, fmt.Errorf("list entries for set %s: %w", set.ID, err)
	}
	playersByID, err := s.playerRepo.GetByIDs(ctx, set.PlayerIDs)
	if err != nil {
		return SetSummary{}, fmt.Errorf("get roster for set %s: %w", set.ID, err)
	}

	roster := rosterInOrder(set, playersByID)
	standings := ledger.Aggregate(roster, entries)

	rounds := 0
	for _, e := range entries {
		if e.RoundNumber > rounds {
			rounds = e.RoundNumber
		}
	}

	summary := SetSummary{
		GameSet:       set,
		RoundsPlayed:  rounds,
		IsViewerAdmin: set.IsAdmin(viewerID),
	}
	if rounds > 0 && len(standings) > 0 {
		leader := standings[0]
		summary.Leader = &leader
	}
	return summary, nil
}

package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/identity"
	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	"github.com/scorepadhq/scorepad/internal/domain/player"
	"github.com/scorepadhq/scorepad/internal/usecase"
)

type Handler struct {
	playerService    *usecase.PlayerService
	gameSetService   *usecase.GameSetService
	sessionService   *usecase.SessionService
	adminService     *usecase.AdminService
	dashboardService *usecase.DashboardService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	gameSetService *usecase.GameSetService,
	sessionService *usecase.SessionService,
	adminService *usecase.AdminService,
	dashboardService *usecase.DashboardService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		playerService:    playerService,
		gameSetService:   gameSetService,
		sessionService:   sessionService,
		adminService:     adminService,
		dashboardService: dashboardService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type playerDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type gameSetDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatorID string   `json:"creatorId"`
	AdminIDs  []string `json:"adminIds"`
	PlayerIDs []string `json:"playerIds"`
	CreatedAt string   `json:"createdAt"`
}

type scoreEntryDTO struct {
	ID          string `json:"id"`
	PlayerID    string `json:"playerId"`
	RoundNumber int    `json:"roundNumber"`
	Score       int    `json:"score"`
	CreatorID   string `json:"creatorId"`
	CreatedAt   string `json:"createdAt"`
}

type standingDTO struct {
	Player playerDTO `json:"player"`
	Total  int       `json:"total"`
}

type setSnapshotDTO struct {
	GameSet       gameSetDTO      `json:"gameSet"`
	Roster        []playerDTO     `json:"roster"`
	Entries       []scoreEntryDTO `json:"entries"`
	Leaderboard   []standingDTO   `json:"leaderboard"`
	NextRound     int             `json:"nextRound"`
	IsViewerAdmin bool            `json:"isViewerAdmin"`
}

type savedRoundDTO struct {
	Entries     []scoreEntryDTO `json:"entries"`
	Leaderboard []standingDTO   `json:"leaderboard"`
}

type setSummaryDTO struct {
	GameSet       gameSetDTO   `json:"gameSet"`
	RoundsPlayed  int          `json:"roundsPlayed"`
	Leader        *standingDTO `json:"leader,omitempty"`
	IsViewerAdmin bool         `json:"isViewerAdmin"`
}

type adminUserDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsCreator   bool   `json:"isCreator"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func gameSetToDTO(v gameset.GameSet) gameSetDTO {
	return gameSetDTO{
		ID:        v.ID,
		Name:      v.Name,
		CreatorID: v.CreatorID,
		AdminIDs:  append([]string{}, v.AdminIDs...),
		PlayerIDs: append([]string{}, v.PlayerIDs...),
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func scoreEntryToDTO(v ledger.ScoreEntry) scoreEntryDTO {
	return scoreEntryDTO{
		ID:          v.ID,
		PlayerID:    v.PlayerID,
		RoundNumber: v.RoundNumber,
		Score:       v.Score,
		CreatorID:   v.CreatorID,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func standingToDTO(v ledger.Standing) standingDTO {
	return standingDTO{
		Player: playerToDTO(v.Player),
		Total:  v.Total,
	}
}

func standingsToDTO(standings []ledger.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		out = append(out, standingToDTO(s))
	}
	return out
}

func entriesToDTO(entries []ledger.ScoreEntry) []scoreEntryDTO {
	out := make([]scoreEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, scoreEntryToDTO(e))
	}
	return out
}

func adminUserToDTO(v identity.User, creatorID string) adminUserDTO {
	return adminUserDTO{
		ID:          v.ID,
		Email:       v.Email,
		DisplayName: v.DisplayName,
		IsCreator:   v.ID == creatorID,
	}
}

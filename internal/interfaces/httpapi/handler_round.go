package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	"github.com/scorepadhq/scorepad/internal/usecase"
)

func (h *Handler) SaveRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRound")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	setID := strings.TrimSpace(r.PathValue("setID"))

	var req saveRoundRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draft := make([]ledger.DraftScore, 0, len(req.Scores))
	for _, item := range req.Scores {
		draft = append(draft, ledger.DraftScore{
			PlayerID: item.PlayerID,
			Score:    item.Score,
		})
	}

	saved, err := h.sessionService.SaveRound(ctx, setID, req.RoundNumber, draft, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "save round failed",
			"set_id", setID,
			"round_number", req.RoundNumber,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, savedRoundDTO{
		Entries:     entriesToDTO(saved.Entries),
		Leaderboard: standingsToDTO(saved.Leaderboard),
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	setID := strings.TrimSpace(r.PathValue("setID"))

	snapshot, err := h.sessionService.LoadSet(ctx, setID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "set_id", setID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Standings: standingsToDTO(snapshot.Leaderboard),
		NextRound: snapshot.NextRound,
	})
}

type saveRoundRequest struct {
	RoundNumber int               `json:"roundNumber" validate:"required,min=1"`
	Scores      []draftScoreInput `json:"scores" validate:"required,min=1,dive"`
}

type draftScoreInput struct {
	PlayerID string `json:"playerId" validate:"required"`
	Score    int    `json:"score" validate:"min=-10,max=40"`
}

type leaderboardDTO struct {
	Standings []standingDTO `json:"standings"`
	NextRound int           `json:"nextRound"`
}

package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/scorepadhq/scorepad/internal/usecase"
)

func (h *Handler) CreateGameSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameSet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createGameSetRequest
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

	set, err := h.gameSetService.CreateGameSet(ctx, usecase.CreateGameSetInput{
		Name:      req.Name,
		CreatorID: principal.UserID,
		PlayerIDs: req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create game set failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameSetToDTO(set))
}

func (h *Handler) ListGameSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameSets")
	defer span.End()

	sets, err := h.gameSetService.ListGameSets(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list game sets failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameSetDTO, 0, len(sets))
	for _, set := range sets {
		items = append(items, gameSetToDTO(set))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGameSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameSet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	setID := strings.TrimSpace(r.PathValue("setID"))

	snapshot, err := h.sessionService.LoadSet(ctx, setID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "load game set failed", "set_id", setID, "error", err)
		writeError(ctx, w, err)
		return
	}

	roster := make([]playerDTO, 0, len(snapshot.Roster))
	for _, p := range snapshot.Roster {
		roster = append(roster, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, setSnapshotDTO{
		GameSet:       gameSetToDTO(snapshot.GameSet),
		Roster:        roster,
		Entries:       entriesToDTO(snapshot.Entries),
		Leaderboard:   standingsToDTO(snapshot.Leaderboard),
		NextRound:     snapshot.NextRound,
		IsViewerAdmin: snapshot.IsViewerAdmin,
	})
}

func (h *Handler) DeleteGameSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGameSet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	setID := strings.TrimSpace(r.PathValue("setID"))

	if err := h.gameSetService.DeleteGameSet(ctx, setID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete game set failed", "set_id", setID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) AddPlayerToGameSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayerToGameSet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	setID := strings.TrimSpace(r.PathValue("setID"))

	var req addPlayerRequest
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

	set, err := h.gameSetService.AddPlayer(ctx, setID, principal.UserID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "add roster player failed", "set_id", setID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameSetToDTO(set))
}

type createGameSetRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	PlayerIDs []string `json:"playerIds" validate:"required,min=2,dive,required"`
}

type addPlayerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

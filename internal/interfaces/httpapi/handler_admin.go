package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/scorepadhq/scorepad/internal/usecase"
)

func (h *Handler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdmins")
	defer span.End()

	setID := strings.TrimSpace(r.PathValue("setID"))

	set, err := h.gameSetService.GetGameSet(ctx, setID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game set failed", "set_id", setID, "error", err)
		writeError(ctx, w, err)
		return
	}

	admins, err := h.adminService.GetAdmins(ctx, setID)
	if err != nil {
		h.logger.WarnContext(ctx, "get admins failed", "set_id", setID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]adminUserDTO, 0, len(admins))
	for _, admin := range admins {
		items = append(items, adminUserToDTO(admin, set.CreatorID))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddAdmin")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	setID := strings.TrimSpace(r.PathValue("setID"))

	var req addAdminRequest
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

	set, err := h.adminService.AddAdmin(ctx, setID, principal.UserID, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "add admin failed", "set_id", setID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameSetToDTO(set))
}

func (h *Handler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveAdmin")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	setID := strings.TrimSpace(r.PathValue("setID"))
	targetUserID := strings.TrimSpace(r.PathValue("userID"))

	set, err := h.adminService.RemoveAdmin(ctx, setID, principal.UserID, targetUserID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove admin failed",
			"set_id", setID,
			"user_id", principal.UserID,
			"target_user_id", targetUserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameSetToDTO(set))
}

type addAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

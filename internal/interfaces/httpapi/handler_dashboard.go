package httpapi

import (
	"fmt"
	"net/http"

	"github.com/scorepadhq/scorepad/internal/usecase"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	summaries, err := h.dashboardService.ListSetSummaries(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]setSummaryDTO, 0, len(summaries))
	for _, summary := range summaries {
		item := setSummaryDTO{
			GameSet:       gameSetToDTO(summary.GameSet),
			RoundsPlayed:  summary.RoundsPlayed,
			IsViewerAdmin: summary.IsViewerAdmin,
		}
		if summary.Leader != nil {
			leader := standingToDTO(*summary.Leader)
			item.Leader = &leader
		}
		items = append(items, item)
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

package fulfillment

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/der-stern/stern-erp/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// GetDailyPicks serves the per-supplier summary for one calendar day.
// Accepts ?date=YYYY-MM-DD, defaulting to today.
func (h *Handler) GetDailyPicks(w http.ResponseWriter, r *http.Request) {
	var day time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	picks, err := h.service.Picks(r.Context(), day)
	if err != nil {
		h.logger.Error("daily picks failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"picks": picks,
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/inodbandara-official/recommendation/internal/trend"
)

// GET /recommendations/trending
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 10, 50)
	if !ok {
		return
	}
	windowDays, ok := queryInt(w, r, "window_days", trend.DefaultWindowDays, 365)
	if !ok {
		return
	}

	trending, err := h.service.RecommendTrending(r.Context(), limit, windowDays)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	respondJSON(w, http.StatusOK, TrendingResponse{
		Trending:    trending,
		WindowDays:  windowDays,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

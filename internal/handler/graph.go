package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// GET /users/{userID}/recommendations/graph
func (h *Handler) GetGraphRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}
	limit, ok := queryInt(w, r, "limit", 10, 50)
	if !ok {
		return
	}

	scores, err := h.service.RecommendGraph(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	respondJSON(w, http.StatusOK, GraphResponse{
		UserID:          userID,
		Recommendations: scores,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /users/{userID}/recommendations/pagerank
func (h *Handler) GetPageRankRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}
	limit, ok := queryInt(w, r, "limit", 10, 50)
	if !ok {
		return
	}

	scores, err := h.service.RecommendPageRank(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	respondJSON(w, http.StatusOK, GraphResponse{
		UserID:          userID,
		Recommendations: scores,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

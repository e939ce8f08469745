package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/inodbandara-official/recommendation/internal/hybrid"
)

// GET /users/{userID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	limit, ok := queryInt(w, r, "limit", 10, 50)
	if !ok {
		return
	}

	// Optional strategy override; must name a known strategy when present.
	strategy := r.URL.Query().Get("strategy")
	if strategy != "" {
		if _, ok := hybrid.ParseStrategy(strategy); !ok {
			respondError(w, http.StatusBadRequest, "invalid_parameter", "Invalid strategy parameter")
			return
		}
	}

	result, err := h.service.Recommend(r.Context(), userID, limit, strategy)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user_not_found",
				fmt.Sprintf("User with ID %s does not exist", userID))
			return
		}
		if domain.IsSchemaError(err) {
			respondError(w, http.StatusInternalServerError, "schema_error",
				"Input data is missing required columns")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			respondError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	resp := RecommendationResponse{
		UserID:          userID,
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			Strategy:    result.Strategy,
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	}

	respondJSON(w, http.StatusOK, resp)
}

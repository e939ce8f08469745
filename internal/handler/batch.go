package handler

import "net/http"

const (
	batchDefaultLimit = 20
	batchMaxLimit     = 100
	batchMaxPage      = 10000
)

// GET /recommendations/batch
//
// Pages through the user base and generates a ranked list per user; partial
// failures surface inside the response body, not as an HTTP error.
func (h *Handler) GetBatchRecommendations(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page", 1, batchMaxPage)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", batchDefaultLimit, batchMaxLimit)
	if !ok {
		return
	}

	result, err := h.service.GetBatchRecommendations(r.Context(), page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inodbandara-official/recommendation/internal/domain"
)

// POST /users/{userID}/attendance
func (h *Handler) AddAttendance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	var req AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EventID == "" {
		respondError(w, http.StatusBadRequest, "invalid_body", "Request body must include event_id")
		return
	}

	if err := h.service.AddAttendance(r.Context(), userID, req.EventID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user_not_found",
				fmt.Sprintf("User with ID %s does not exist", userID))
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	respondJSON(w, http.StatusCreated, AttendanceResponse{
		UserID:  userID,
		EventID: req.EventID,
		Status:  "recorded",
	})
}

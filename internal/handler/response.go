package handler

import "github.com/inodbandara-official/recommendation/internal/domain"

type RecommendationResponse struct {
	UserID          string                    `json:"user_id"`
	Recommendations []domain.ScoredEvent      `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type TrendingResponse struct {
	Trending    []domain.TrendingEvent `json:"trending"`
	WindowDays  int                    `json:"window_days"`
	GeneratedAt string                 `json:"generated_at"`
}

type GraphResponse struct {
	UserID          string              `json:"user_id"`
	Recommendations []domain.GraphScore `json:"recommendations"`
	GeneratedAt     string              `json:"generated_at"`
}

type AttendanceRequest struct {
	EventID string `json:"event_id"`
}

type AttendanceResponse struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

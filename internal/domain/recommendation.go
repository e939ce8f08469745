package domain

// CandidateScore is the per-event join of the three sub-model outputs before
// hybrid ranking. A component is 0 when that sub-model produced no score.
type CandidateScore struct {
	EventID        string
	KnowledgeScore float64
	GraphScore     float64
	TrendScore     float64
}

type ScoredEvent struct {
	EventID        string   `json:"event_id"`
	KnowledgeScore float64  `json:"knowledge_score"`
	GraphScore     float64  `json:"graph_score"`
	TrendScore     float64  `json:"trend_score"`
	FinalScore     float64  `json:"final_score"`
	Explanations   []string `json:"explanations"`
}

type TrendingEvent struct {
	EventID     string  `json:"event_id"`
	RecentCount int     `json:"recent_count"`
	PrevCount   int     `json:"prev_count"`
	GrowthRate  float64 `json:"growth_rate"`
	TrendScore  float64 `json:"trend_score"`
}

type GraphScore struct {
	EventID string  `json:"event_id"`
	Score   float64 `json:"graph_score"`
}

type RecommendationMeta struct {
	Strategy    string `json:"strategy"`
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []ScoredEvent
	Strategy        string
	CacheHit        bool
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type BatchUserResult struct {
	UserID          string        `json:"user_id"`
	Recommendations []ScoredEvent `json:"recommendations,omitempty"`
	Status          string        `json:"status"`
	Error           string        `json:"error,omitempty"`
	Message         string        `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	RequestID   string `json:"request_id"`
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}

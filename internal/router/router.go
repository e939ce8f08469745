package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/inodbandara-official/recommendation/internal/handler"
	"github.com/inodbandara-official/recommendation/internal/middleware"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestLogging())
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/users/{userID}/recommendations", h.GetRecommendations)
	r.Get("/users/{userID}/recommendations/graph", h.GetGraphRecommendations)
	r.Get("/users/{userID}/recommendations/pagerank", h.GetPageRankRecommendations)
	r.Post("/users/{userID}/attendance", h.AddAttendance)
	r.Get("/recommendations/trending", h.GetTrending)
	r.Get("/recommendations/batch", h.GetBatchRecommendations)
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

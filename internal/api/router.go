package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/somnolabs/sleep-intelligence/docs"
	"github.com/somnolabs/sleep-intelligence/internal/api/handler"
	"github.com/somnolabs/sleep-intelligence/internal/api/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler      *handler.UserHandler
	sessionHandler   *handler.SessionHandler
	circadianHandler *handler.CircadianHandler
	insightsHandler  *handler.InsightsHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	sessionHandler *handler.SessionHandler,
	circadianHandler *handler.CircadianHandler,
	insightsHandler *handler.InsightsHandler,
) *Router {
	return &Router{
		userHandler:      userHandler,
		sessionHandler:   sessionHandler,
		circadianHandler: circadianHandler,
		insightsHandler:  insightsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Tracking sessions (nested under users)
			r.Route("/{userId}/sessions", func(r chi.Router) {
				r.Post("/", rt.sessionHandler.Start)
				r.Get("/", rt.sessionHandler.List)
				r.Get("/{sessionId}", rt.sessionHandler.Get)
				r.Post("/{sessionId}/samples", rt.sessionHandler.IngestSamples)
				r.Post("/{sessionId}/end", rt.sessionHandler.End)
			})

			// Circadian analysis
			r.Get("/{userId}/circadian", rt.circadianHandler.GetCircadian)
			r.Get("/{userId}/recommendations", rt.circadianHandler.GetRecommendations)
			r.Get("/{userId}/insights", rt.insightsHandler.GetInsights)
		})

		// Insights feedback
		r.Post("/insights/feedback", rt.insightsHandler.PostFeedback)
	})

	return r
}

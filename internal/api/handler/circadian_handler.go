package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/internal/service"
	"github.com/somnolabs/sleep-intelligence/pkg/problem"
)

// CircadianHandler handles the circadian analysis endpoints.
type CircadianHandler struct {
	service service.CircadianService
}

func NewCircadianHandler(service service.CircadianService) *CircadianHandler {
	return &CircadianHandler{service: service}
}

// GetCircadian handles GET /v1/users/{userId}/circadian
// @Summary Get circadian rhythm analysis
// @Description Compute the full circadian report: chronotype, phase estimate, timing statistics, disruption risk and recommendations.
// @Tags circadian
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.CircadianRhythmAnalysis "Circadian analysis"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/circadian [get]
func (h *CircadianHandler) GetCircadian(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	report, err := h.service.Analyze(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute circadian analysis").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GetRecommendations handles GET /v1/users/{userId}/recommendations
// @Summary Get sleep recommendations
// @Description Rule-based recommendations for the user's latest finalized session, ranked by priority.
// @Tags circadian
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.RecommendationsResponse "Ranked recommendations"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found or no finalized session"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recommendations [get]
func (h *CircadianHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	response, err := h.service.Recommendations(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrNoAnalysisAvailable) {
			problem.NotFound("No finalized session to analyze").Write(w)
			return
		}
		problem.InternalError("Failed to compute recommendations").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

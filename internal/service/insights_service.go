package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/internal/langfuse"
	"github.com/somnolabs/sleep-intelligence/internal/llm"
	"github.com/somnolabs/sleep-intelligence/internal/repository"
)

// InsightsService layers the LLM narrative over the computed circadian
// analysis. The narrative never feeds back into the deterministic results.
type InsightsService interface {
	// Generate builds the circadian report and asks the LLM to narrate it.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

type insightsService struct {
	circadianService CircadianService
	llmClient        llm.NarrativeLLM
	sessionRepo      repository.SessionRepository
	userRepo         repository.UserRepository
	analytics        langfuse.Client
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(
	circadianService CircadianService,
	llmClient llm.NarrativeLLM,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	analytics langfuse.Client,
) InsightsService {
	return &insightsService{
		circadianService: circadianService,
		llmClient:        llmClient,
		sessionRepo:      sessionRepo,
		userRepo:         userRepo,
		analytics:        analytics,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	circadian, err := s.circadianService.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	narrativeCtx := &domain.NarrativeContext{
		Circadian: *circadian,
	}

	// Attach the latest finalized session when one exists
	if session, err := s.sessionRepo.LatestCompleted(ctx, userID); err == nil {
		resp := session.ToResponse()
		narrativeCtx.LatestSession = &resp
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	narrative, err := s.llmClient.GenerateNarrative(ctx, narrativeCtx)
	if err != nil {
		return nil, err
	}

	response := &domain.InsightsResponse{
		Circadian: *circadian,
		Narrative: *narrative,
	}

	// Record the trace so the narrative can be scored by user feedback
	traceID, err := s.analytics.CreateTrace(ctx, langfuse.TraceInput{
		UserID: userID.String(),
		Name:   "sleep-insights",
		Input:  narrativeCtx,
		Output: narrative,
		Tags:   []string{"insights", "llm"},
	})
	if err == nil {
		response.TraceID = traceID
	}

	return response, nil
}

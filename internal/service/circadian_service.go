package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/analysis"
	"github.com/somnolabs/sleep-intelligence/internal/cache"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/internal/environment"
	"github.com/somnolabs/sleep-intelligence/internal/langfuse"
	"github.com/somnolabs/sleep-intelligence/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// HistoryWindowDays is the session history window for circadian analysis.
	HistoryWindowDays = 30

	// LiveContextHours is how far back recent samples feed the phase markers.
	LiveContextHours = 48
)

// CircadianService computes the circadian report and rule recommendations
// from the stored session history.
type CircadianService interface {
	// Analyze builds the full circadian report for a user. Served from cache
	// when a fresh report exists.
	Analyze(ctx context.Context, userID uuid.UUID) (*domain.CircadianRhythmAnalysis, error)
	// Recommendations returns the ranked rule recommendations for the user's
	// latest finalized session, or ErrNoAnalysisAvailable.
	Recommendations(ctx context.Context, userID uuid.UUID) (*domain.RecommendationsResponse, error)
}

type circadianService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	light       environment.LightExposureSource
	sensor      environment.Sensor
	cache       cache.CircadianCache
	analytics   langfuse.Client

	cfg      analysis.Config
	analyzer *analysis.Analyzer
	risk     *analysis.RiskScorer
	timing   *analysis.TimingAnalyzer
	engine   *analysis.Engine
}

func NewCircadianService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	light environment.LightExposureSource,
	sensor environment.Sensor,
	circadianCache cache.CircadianCache,
	analytics langfuse.Client,
	cfg analysis.Config,
) CircadianService {
	return &circadianService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		light:       light,
		sensor:      sensor,
		cache:       circadianCache,
		analytics:   analytics,
		cfg:         cfg,
		analyzer:    analysis.NewAnalyzer(cfg),
		risk:        analysis.NewRiskScorer(cfg),
		timing:      analysis.NewTimingAnalyzer(cfg),
		engine:      analysis.NewEngine(cfg),
	}
}

func (s *circadianService) Analyze(ctx context.Context, userID uuid.UUID) (*domain.CircadianRhythmAnalysis, error) {
	tracer := otel.Tracer("sleep-intelligence-api/circadian")
	ctx, span := tracer.Start(ctx, "CircadianService.Analyze",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
		),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if report, ok := s.cache.Get(ctx, userID); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return report, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	now := time.Now().UTC()
	history, err := s.sessionRepo.History(ctx, userID, now.AddDate(0, 0, -HistoryWindowDays))
	if err != nil {
		return nil, err
	}

	live, err := s.liveContext(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	lightProfile, err := s.light.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	conditions, err := s.sensor.Conditions(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Latest finalized analysis drives the per-session recommendation rules;
	// a user with no completed sessions gets a report without them.
	var latest domain.SleepAnalysis
	if session, err := s.sessionRepo.LatestCompleted(ctx, userID); err == nil {
		latest = sessionAnalysis(session)
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	loc := time.UTC
	if user.Timezone != "" {
		if l, err := time.LoadLocation(user.Timezone); err == nil {
			loc = l
		}
	}

	report := s.analyzer.AnalyzeCircadianRhythm(history, live, lightProfile, latest, conditions, loc)

	span.SetAttributes(
		attribute.String("circadian.chronotype", string(report.Chronotype)),
		attribute.String("circadian.risk_level", string(report.DisruptionRisk.Level)),
		attribute.Int("circadian.sessions_used", report.Timing.SessionsUsed),
	)
	// Attach output payload for Langfuse
	if outputJSON, err := json.Marshal(report); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}
	s.analytics.CreateTrace(ctx, langfuse.TraceInput{
		UserID: userID.String(),
		Name:   "circadian-analysis",
		Output: report,
		Tags:   []string{"circadian"},
	})

	s.cache.Set(ctx, userID, &report)
	return &report, nil
}

func (s *circadianService) Recommendations(ctx context.Context, userID uuid.UUID) (*domain.RecommendationsResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	session, err := s.sessionRepo.LatestCompleted(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNoAnalysisAvailable
		}
		return nil, err
	}

	now := time.Now().UTC()
	history, err := s.sessionRepo.History(ctx, userID, now.AddDate(0, 0, -HistoryWindowDays))
	if err != nil {
		return nil, err
	}

	lightProfile, err := s.light.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	conditions, err := s.sensor.Conditions(ctx, userID)
	if err != nil {
		return nil, err
	}

	timing := s.timing.Analyze(history)
	chronotype := analysis.ClassifyChronotype(history, s.cfg)
	risk := s.risk.Score(timing, lightProfile, chronotype)
	latest := sessionAnalysis(session)
	recommendations := s.engine.Recommend(latest, risk, conditions)

	// Per-rule trigger counts for the analytics sink.
	triggers := map[string]any{}
	for _, rec := range recommendations {
		key := string(rec.Type)
		count, _ := triggers[key].(int)
		triggers[key] = count + 1
	}

	s.analytics.CreateTrace(ctx, langfuse.TraceInput{
		UserID:   userID.String(),
		Name:     "recommendations",
		Output:   recommendations,
		Tags:     []string{"recommendations"},
		Metadata: triggers,
	})

	return &domain.RecommendationsResponse{
		SessionID:       session.ID.String(),
		Analysis:        latest,
		Risk:            risk,
		Recommendations: recommendations,
	}, nil
}

// liveContext converts the user's recent samples into phase-marker input.
func (s *circadianService) liveContext(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.HealthDataPoint, error) {
	samples, err := s.sessionRepo.RecentSamples(ctx, userID, now.Add(-LiveContextHours*time.Hour))
	if err != nil {
		return nil, err
	}

	points := make([]domain.HealthDataPoint, 0, len(samples))
	for _, sample := range samples {
		switch sample.Kind {
		case domain.SensorBodyTemperature, domain.SensorHeartRate:
			points = append(points, domain.HealthDataPoint{
				Timestamp: sample.Timestamp,
				Kind:      sample.Kind,
				Value:     sample.Value,
			})
		}
	}
	return points, nil
}

// sessionAnalysis rebuilds the analysis value from a finalized session's
// summary columns and stages.
func sessionAnalysis(session *domain.SleepSession) domain.SleepAnalysis {
	return domain.SleepAnalysis{
		DurationSeconds: session.DurationSeconds,
		Efficiency:      session.Efficiency,
		DeepSleepPct:    session.DeepSleepPct,
		RemSleepPct:     session.RemSleepPct,
		LightSleepPct:   session.LightSleepPct,
		AwakePct:        session.AwakePct,
		SleepScore:      session.SleepScore,
		Stages:          session.Stages,
	}
}

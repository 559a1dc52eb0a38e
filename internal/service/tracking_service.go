package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/analysis"
	"github.com/somnolabs/sleep-intelligence/internal/cache"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/internal/langfuse"
	"github.com/somnolabs/sleep-intelligence/internal/repository"
	"github.com/somnolabs/sleep-intelligence/pkg/pagination"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TrackingService owns the session lifecycle: sessions move from TRACKING to
// COMPLETED exactly once, and the full analysis pipeline runs on completion.
type TrackingService interface {
	// Start opens a tracking session. At most one session per user may be
	// tracking; a second start returns ErrConflict.
	Start(ctx context.Context, userID uuid.UUID, req *domain.StartSessionRequest) (*domain.SleepSession, error)
	// IngestSamples appends a validated batch of sensor samples to an active
	// session. Returns the number of samples stored.
	IngestSamples(ctx context.Context, userID, sessionID uuid.UUID, req *domain.IngestSamplesRequest) (int, error)
	// End finalizes an active session: samples are bucketed into epochs,
	// staged, aggregated and persisted with the session.
	End(ctx context.Context, userID, sessionID uuid.UUID, req *domain.EndSessionRequest) (*domain.SleepSession, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SleepSession, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) (*domain.SessionListResponse, error)
}

type trackingService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	cache       cache.CircadianCache
	analytics   langfuse.Client

	cfg        analysis.Config
	extractor  *analysis.Extractor
	classifier *analysis.Classifier
}

func NewTrackingService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	circadianCache cache.CircadianCache,
	analytics langfuse.Client,
	cfg analysis.Config,
) TrackingService {
	return &trackingService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		cache:       circadianCache,
		analytics:   analytics,
		cfg:         cfg,
		extractor:   analysis.NewExtractor(cfg),
		classifier:  analysis.NewClassifier(cfg),
	}
}

func (s *trackingService) Start(ctx context.Context, userID uuid.UUID, req *domain.StartSessionRequest) (*domain.SleepSession, error) {
	// Load user to confirm existence and get their home timezone
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Reject a second concurrent tracking session
	if _, err := s.sessionRepo.GetActive(ctx, userID); err == nil {
		return nil, domain.ErrConflict
	} else if err != domain.ErrNoActiveSession {
		return nil, err
	}

	startedAt := time.Now().UTC()
	if req.StartedAt != nil {
		startedAt = req.StartedAt.UTC()
	}

	localTZ := user.Timezone
	if req.LocalTimezone != nil && *req.LocalTimezone != "" {
		localTZ = *req.LocalTimezone
	}
	if localTZ == "" {
		localTZ = "UTC"
	}

	session := &domain.SleepSession{
		UserID:        userID,
		Status:        domain.SessionTracking,
		StartedAt:     startedAt,
		LocalTimezone: localTZ,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *trackingService) IngestSamples(ctx context.Context, userID, sessionID uuid.UUID, req *domain.IngestSamplesRequest) (int, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if session.UserID != userID {
		return 0, domain.ErrNotFound
	}
	if session.Status != domain.SessionTracking {
		return 0, domain.ErrNoActiveSession
	}

	samples := make([]domain.SensorSample, 0, len(req.Samples))
	for i := range req.Samples {
		sample := req.Samples[i].ToSample(sessionID)
		if err := sample.Validate(); err != nil {
			return 0, err
		}
		samples = append(samples, sample)
	}

	if err := s.sessionRepo.AppendSamples(ctx, samples); err != nil {
		return 0, err
	}

	return len(samples), nil
}

func (s *trackingService) End(ctx context.Context, userID, sessionID uuid.UUID, req *domain.EndSessionRequest) (*domain.SleepSession, error) {
	tracer := otel.Tracer("sleep-intelligence-api/tracking")
	ctx, span := tracer.Start(ctx, "TrackingService.End",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("session.id", sessionID.String()),
		),
	)
	defer span.End()

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if session.Status != domain.SessionTracking {
		return nil, domain.ErrNoActiveSession
	}

	endedAt := time.Now().UTC()
	if req.EndedAt != nil {
		endedAt = req.EndedAt.UTC()
	}
	if !endedAt.After(session.StartedAt) {
		return nil, domain.ErrInvalidInput
	}

	samples, err := s.sessionRepo.SamplesBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	windows := s.epochWindows(samples)
	stages := s.classifier.ClassifySession(windows)
	for i := range stages {
		stages[i].SessionID = sessionID
	}
	result := analysis.AggregateWithTarget(stages, s.cfg.TargetSleepDuration)

	session.Status = domain.SessionCompleted
	session.EndedAt = &endedAt
	session.DurationSeconds = result.DurationSeconds
	session.Efficiency = result.Efficiency
	session.DeepSleepPct = result.DeepSleepPct
	session.RemSleepPct = result.RemSleepPct
	session.LightSleepPct = result.LightSleepPct
	session.AwakePct = result.AwakePct
	session.SleepScore = result.SleepScore

	if err := s.sessionRepo.Finalize(ctx, session, stages); err != nil {
		return nil, err
	}
	session.Stages = stages

	// A new completed session changes every circadian answer for this user
	s.cache.Invalidate(ctx, userID)

	span.SetAttributes(
		attribute.Int("session.stages", len(stages)),
		attribute.Float64("session.sleep_score", result.SleepScore),
	)
	s.analytics.CreateTrace(ctx, langfuse.TraceInput{
		UserID: userID.String(),
		Name:   "session-completed",
		Output: result,
		Tags:   []string{"tracking"},
	})

	return session, nil
}

func (s *trackingService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SleepSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (s *trackingService) List(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) (*domain.SessionListResponse, error) {
	// Check if user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	sessions, err := s.sessionRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(sessions) > limit

	// Trim to actual limit
	if hasMore {
		sessions = sessions[:limit]
	}

	// Build response
	response := &domain.SessionListResponse{
		Data: make([]domain.SessionResponse, len(sessions)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i := range sessions {
		response.Data[i] = sessions[i].ToResponse()
	}

	// Set next cursor if there are more results
	if hasMore && len(sessions) > 0 {
		last := sessions[len(sessions)-1]
		cursor := &pagination.Cursor{
			ID:        last.ID,
			StartedAt: last.StartedAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

// epochWindows buckets raw samples into fixed epochs and extracts one
// feature window per non-empty epoch, in chronological order.
func (s *trackingService) epochWindows(samples []domain.SensorSample) []domain.FeatureWindow {
	if len(samples) == 0 {
		return nil
	}

	buckets := make(map[time.Time][]domain.SensorSample)
	for _, sample := range samples {
		key := sample.Timestamp.Truncate(s.cfg.EpochLength)
		buckets[key] = append(buckets[key], sample)
	}

	keys := make([]time.Time, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	windows := make([]domain.FeatureWindow, 0, len(keys))
	for _, key := range keys {
		windows = append(windows, s.extractor.Extract(buckets[key]))
	}
	return windows
}

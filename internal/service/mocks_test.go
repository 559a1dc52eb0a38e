package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/internal/langfuse"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	sessions map[uuid.UUID]*domain.SleepSession
	samples  map[uuid.UUID][]domain.SensorSample
	stages   map[uuid.UUID][]domain.SleepStage
	err      error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[uuid.UUID]*domain.SleepSession),
		samples:  make(map[uuid.UUID][]domain.SensorSample),
		stages:   make(map[uuid.UUID][]domain.SleepStage),
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.SleepSession) error {
	if m.err != nil {
		return m.err
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *session
	copied.Stages = m.stages[id]
	return &copied, nil
}

func (m *MockSessionRepository) GetActive(ctx context.Context, userID uuid.UUID) (*domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, session := range m.sessions {
		if session.UserID == userID && session.Status == domain.SessionTracking {
			copied := *session
			return &copied, nil
		}
	}
	return nil, domain.ErrNoActiveSession
}

func (m *MockSessionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SleepSession
	for _, session := range m.sessions {
		if session.UserID == userID {
			result = append(result, *session)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.After(result[j].StartedAt) })
	return result, nil
}

func (m *MockSessionRepository) History(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SleepSession
	for _, session := range m.sessions {
		if session.UserID == userID && session.Status == domain.SessionCompleted && !session.StartedAt.Before(since) {
			result = append(result, *session)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.Before(result[j].StartedAt) })
	return result, nil
}

func (m *MockSessionRepository) LatestCompleted(ctx context.Context, userID uuid.UUID) (*domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var latest *domain.SleepSession
	for _, session := range m.sessions {
		if session.UserID != userID || session.Status != domain.SessionCompleted {
			continue
		}
		if latest == nil || session.StartedAt.After(latest.StartedAt) {
			latest = session
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	copied := *latest
	copied.Stages = m.stages[latest.ID]
	return &copied, nil
}

func (m *MockSessionRepository) AppendSamples(ctx context.Context, samples []domain.SensorSample) error {
	if m.err != nil {
		return m.err
	}
	for _, sample := range samples {
		m.samples[sample.SessionID] = append(m.samples[sample.SessionID], sample)
	}
	return nil
}

func (m *MockSessionRepository) SamplesBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SensorSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	samples := m.samples[sessionID]
	sorted := make([]domain.SensorSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
	return sorted, nil
}

func (m *MockSessionRepository) RecentSamples(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SensorSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SensorSample
	for sessionID, samples := range m.samples {
		session, ok := m.sessions[sessionID]
		if !ok || session.UserID != userID {
			continue
		}
		for _, sample := range samples {
			if !sample.Timestamp.Before(since) {
				result = append(result, sample)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (m *MockSessionRepository) Finalize(ctx context.Context, session *domain.SleepSession, stages []domain.SleepStage) error {
	if m.err != nil {
		return m.err
	}
	copied := *session
	copied.Stages = nil
	m.sessions[session.ID] = &copied
	m.stages[session.ID] = stages
	return nil
}

func (m *MockSessionRepository) StagesBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SleepStage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stages[sessionID], nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockCache is an in-memory CircadianCache recording invalidations.
type MockCache struct {
	entries     map[uuid.UUID]*domain.CircadianRhythmAnalysis
	invalidated int
	sets        int
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[uuid.UUID]*domain.CircadianRhythmAnalysis)}
}

func (m *MockCache) Get(ctx context.Context, userID uuid.UUID) (*domain.CircadianRhythmAnalysis, bool) {
	report, ok := m.entries[userID]
	return report, ok
}

func (m *MockCache) Set(ctx context.Context, userID uuid.UUID, report *domain.CircadianRhythmAnalysis) {
	m.entries[userID] = report
	m.sets++
}

func (m *MockCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	delete(m.entries, userID)
	m.invalidated++
}

// MockAnalytics is a no-op langfuse client recording created traces.
type MockAnalytics struct {
	traces []langfuse.TraceInput
	scores []langfuse.ScoreInput
}

func (m *MockAnalytics) IsEnabled() bool { return true }

func (m *MockAnalytics) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traces = append(m.traces, in)
	return uuid.New().String(), nil
}

func (m *MockAnalytics) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return nil
}

// MockLightSource returns a fixed light exposure profile.
type MockLightSource struct {
	profile domain.LightExposureProfile
}

func (m *MockLightSource) Profile(ctx context.Context, userID uuid.UUID) (domain.LightExposureProfile, error) {
	return m.profile, nil
}

// MockSensor returns fixed bedroom conditions.
type MockSensor struct {
	env domain.SleepEnvironment
}

func (m *MockSensor) Conditions(ctx context.Context, userID uuid.UUID) (domain.SleepEnvironment, error) {
	return m.env, nil
}

// MockNarrativeLLM returns a canned narrative.
type MockNarrativeLLM struct {
	output *domain.NarrativeOutput
	err    error
	calls  int
}

func (m *MockNarrativeLLM) GenerateNarrative(ctx context.Context, narrativeCtx *domain.NarrativeContext) (*domain.NarrativeOutput, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// Helper functions
func timePtr(t time.Time) *time.Time {
	return &t
}

func strPtr(s string) *string {
	return &s
}

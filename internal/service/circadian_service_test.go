package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/analysis"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

func newCircadianFixture() (CircadianService, *MockSessionRepository, *MockCache, uuid.UUID) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}
	sessionRepo := NewMockSessionRepository()
	circadianCache := NewMockCache()
	svc := NewCircadianService(
		sessionRepo, userRepo,
		&MockLightSource{profile: domain.LightExposureProfile{MorningLightExposure: 0.6, LateNightExposure: 0.1}},
		&MockSensor{env: domain.SleepEnvironment{RoomTemperature: 18, Humidity: 45}},
		circadianCache, &MockAnalytics{}, analysis.DefaultConfig())
	return svc, sessionRepo, circadianCache, userID
}

func seedHistory(t *testing.T, repo *MockSessionRepository, userID uuid.UUID, nights int) {
	t.Helper()
	base := time.Now().UTC().AddDate(0, 0, -nights-1)
	for day := 0; day < nights; day++ {
		start := time.Date(base.Year(), base.Month(), base.Day(), 23, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		end := start.Add(8 * time.Hour)
		session := &domain.SleepSession{
			UserID:          userID,
			Status:          domain.SessionCompleted,
			StartedAt:       start,
			EndedAt:         &end,
			LocalTimezone:   "UTC",
			DurationSeconds: 8 * 3600,
			Efficiency:      0.92,
			DeepSleepPct:    0.22,
			RemSleepPct:     0.2,
			LightSleepPct:   0.5,
			AwakePct:        0.08,
			SleepScore:      0.85,
		}
		if err := repo.Create(context.Background(), session); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func TestCircadianService_Analyze(t *testing.T) {
	svc, sessionRepo, circadianCache, userID := newCircadianFixture()
	seedHistory(t, sessionRepo, userID, 14)

	report, err := svc.Analyze(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Chronotype != domain.ChronotypeNeutral {
		t.Errorf("Chronotype = %v, want neutral for a 23:00 schedule", report.Chronotype)
	}
	if report.Timing.SessionsUsed != 14 {
		t.Errorf("SessionsUsed = %d, want 14", report.Timing.SessionsUsed)
	}
	if report.Timing.Consistency < 0.99 {
		t.Errorf("Consistency = %v, want ~1 for an identical schedule", report.Timing.Consistency)
	}
	if report.DisruptionRisk.Score < 0 || report.DisruptionRisk.Score > 1 {
		t.Errorf("risk score = %v out of range", report.DisruptionRisk.Score)
	}
	if circadianCache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", circadianCache.sets)
	}
}

func TestCircadianService_Analyze_ServesFromCache(t *testing.T) {
	svc, sessionRepo, circadianCache, userID := newCircadianFixture()
	seedHistory(t, sessionRepo, userID, 14)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, userID)
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := svc.Analyze(ctx, userID)
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}

	if circadianCache.sets != 1 {
		t.Errorf("cache sets = %d, want 1 (second call served from cache)", circadianCache.sets)
	}
	if !first.GeneratedAt.Equal(second.GeneratedAt) {
		t.Error("cached report was recomputed")
	}
}

func TestCircadianService_Analyze_NoHistory(t *testing.T) {
	svc, _, _, userID := newCircadianFixture()

	report, err := svc.Analyze(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Chronotype != domain.ChronotypeNeutral {
		t.Errorf("Chronotype = %v, want neutral with no data", report.Chronotype)
	}
	if report.Timing.SessionsUsed != 0 {
		t.Errorf("SessionsUsed = %d, want 0", report.Timing.SessionsUsed)
	}
}

func TestCircadianService_Analyze_UnknownUser(t *testing.T) {
	svc, _, _, _ := newCircadianFixture()

	if _, err := svc.Analyze(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCircadianService_Recommendations(t *testing.T) {
	svc, sessionRepo, _, userID := newCircadianFixture()
	ctx := context.Background()

	// No finalized session yet
	if _, err := svc.Recommendations(ctx, userID); !errors.Is(err, domain.ErrNoAnalysisAvailable) {
		t.Fatalf("error = %v, want ErrNoAnalysisAvailable", err)
	}

	seedHistory(t, sessionRepo, userID, 14)

	// Latest session shows low deep sleep
	start := time.Now().UTC().Add(-10 * time.Hour)
	end := start.Add(6 * time.Hour)
	latest := &domain.SleepSession{
		UserID:          userID,
		Status:          domain.SessionCompleted,
		StartedAt:       start,
		EndedAt:         &end,
		LocalTimezone:   "UTC",
		DurationSeconds: 6 * 3600,
		Efficiency:      0.75,
		DeepSleepPct:    0.1,
		RemSleepPct:     0.1,
		LightSleepPct:   0.55,
		AwakePct:        0.25,
		SleepScore:      0.5,
	}
	if err := sessionRepo.Create(ctx, latest); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := svc.Recommendations(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SessionID != latest.ID.String() {
		t.Errorf("SessionID = %v, want %v", resp.SessionID, latest.ID)
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("a poor night must produce recommendations")
	}
	for i := 1; i < len(resp.Recommendations); i++ {
		if resp.Recommendations[i].Priority > resp.Recommendations[i-1].Priority {
			t.Error("recommendations not sorted by priority descending")
		}
	}
	types := make(map[domain.RecommendationType]bool)
	for _, rec := range resp.Recommendations {
		types[rec.Type] = true
	}
	if !types[domain.RecommendationDeepSleep] {
		t.Error("missing deep-sleep recommendation for 10% deep sleep")
	}
	if !types[domain.RecommendationEfficiency] {
		t.Error("missing efficiency recommendation for 75% efficiency")
	}
}

package analysis

import (
	"reflect"
	"testing"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

func healthyAnalysis() domain.SleepAnalysis {
	return domain.SleepAnalysis{
		DurationSeconds: 8 * 3600,
		Efficiency:      0.93,
		DeepSleepPct:    0.22,
		RemSleepPct:     0.23,
		LightSleepPct:   0.48,
		AwakePct:        0.07,
	}
}

func comfortableBedroom() domain.SleepEnvironment {
	return domain.SleepEnvironment{
		RoomTemperature: 18,
		Humidity:        45,
		LightLevel:      0.05,
		NoiseLevel:      0.1,
	}
}

func TestRecommend_HealthySleeperGetsNothing(t *testing.T) {
	e := NewEngine(DefaultConfig())

	recs := e.Recommend(healthyAnalysis(), domain.DisruptionRisk{Level: domain.RiskLow}, comfortableBedroom())
	if len(recs) != 0 {
		t.Errorf("healthy input should produce no recommendations, got %+v", recs)
	}
}

func TestRecommend_LowDeepSleepTriggersRule(t *testing.T) {
	e := NewEngine(DefaultConfig())

	analysis := healthyAnalysis()
	analysis.DeepSleepPct = 0.12
	analysis.LightSleepPct = 0.58

	recs := e.Recommend(analysis, domain.DisruptionRisk{Level: domain.RiskLow}, comfortableBedroom())

	found := false
	for _, r := range recs {
		if r.Type == domain.RecommendationDeepSleep {
			found = true
		}
	}
	if !found {
		t.Errorf("deep sleep below 20%% must produce a deep-sleep recommendation, got %+v", recs)
	}
}

func TestRecommend_RuleTable(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name     string
		analysis func() domain.SleepAnalysis
		env      func() domain.SleepEnvironment
		risk     domain.RiskLevel
		wantType domain.RecommendationType
	}{
		{
			name: "short night",
			analysis: func() domain.SleepAnalysis {
				a := healthyAnalysis()
				a.DurationSeconds = 5.5 * 3600
				return a
			},
			env:      comfortableBedroom,
			risk:     domain.RiskLow,
			wantType: domain.RecommendationDuration,
		},
		{
			name: "restless night",
			analysis: func() domain.SleepAnalysis {
				a := healthyAnalysis()
				a.Efficiency = 0.7
				a.AwakePct = 0.3
				return a
			},
			env:      comfortableBedroom,
			risk:     domain.RiskLow,
			wantType: domain.RecommendationEfficiency,
		},
		{
			name: "low REM",
			analysis: func() domain.SleepAnalysis {
				a := healthyAnalysis()
				a.RemSleepPct = 0.08
				return a
			},
			env:      comfortableBedroom,
			risk:     domain.RiskLow,
			wantType: domain.RecommendationRemSleep,
		},
		{
			name:     "hot bedroom",
			analysis: healthyAnalysis,
			env: func() domain.SleepEnvironment {
				env := comfortableBedroom()
				env.RoomTemperature = 24
				return env
			},
			risk:     domain.RiskLow,
			wantType: domain.RecommendationEnvironment,
		},
		{
			name:     "elevated disruption risk",
			analysis: healthyAnalysis,
			env:      comfortableBedroom,
			risk:     domain.RiskHigh,
			wantType: domain.RecommendationSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := e.Recommend(tt.analysis(), domain.DisruptionRisk{Level: tt.risk}, tt.env())
			found := false
			for _, r := range recs {
				if r.Type == tt.wantType {
					found = true
				}
			}
			if !found {
				t.Errorf("want a %v recommendation, got %+v", tt.wantType, recs)
			}
		})
	}
}

func TestRecommend_SortedByPriorityAndDeterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())

	analysis := healthyAnalysis()
	analysis.DurationSeconds = 5 * 3600
	analysis.Efficiency = 0.7
	analysis.DeepSleepPct = 0.1
	analysis.RemSleepPct = 0.1
	env := domain.SleepEnvironment{RoomTemperature: 25, Humidity: 70, LightLevel: 0.5, NoiseLevel: 0.5}
	risk := domain.DisruptionRisk{Level: domain.RiskSevere}

	first := e.Recommend(analysis, risk, env)
	second := e.Recommend(analysis, risk, env)

	if !reflect.DeepEqual(first, second) {
		t.Error("Recommend must be deterministic for identical input")
	}
	for i := 1; i < len(first); i++ {
		if first[i].Priority > first[i-1].Priority {
			t.Errorf("recommendations out of order at %d: %+v", i, first)
		}
	}
	if len(first) < 6 {
		t.Errorf("expected the full rule table to fire, got %d recommendations", len(first))
	}
}

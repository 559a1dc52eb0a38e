package analysis

import (
	"fmt"
	"sort"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// Bedroom environment comfort bands.
const (
	roomTempMin = 16.0
	roomTempMax = 20.0
	humidityMin = 30.0
	humidityMax = 60.0
	lightCeil   = 0.2
	noiseCeil   = 0.3
)

// Engine maps analysis facts to ranked recommendations via a fixed rule
// table. No randomness: identical inputs always yield identical output.
type Engine struct {
	cfg Config
}

// NewEngine creates a recommendation engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Recommend evaluates the rule table against a session analysis, its
// disruption risk and the bedroom environment, returning recommendations
// sorted by priority descending (rule order breaks ties).
func (e *Engine) Recommend(
	analysis domain.SleepAnalysis,
	risk domain.DisruptionRisk,
	env domain.SleepEnvironment,
) []domain.Recommendation {
	var recs []domain.Recommendation

	target := e.cfg.TargetSleepDuration.Seconds()
	if analysis.DurationSeconds > 0 && analysis.DurationSeconds < target-3600 {
		deficit := (target - analysis.DurationSeconds) / 3600
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationDuration,
			Title:           "Extend your sleep window",
			Description:     fmt.Sprintf("You slept %.1f hours under your target. Move bedtime earlier in 15-minute steps until the gap closes.", deficit),
			Priority:        5,
			EstimatedImpact: 0.20,
			Category:        domain.CategoryHabits,
		})
	}

	if analysis.DurationSeconds > 0 && analysis.Efficiency < lowEfficiency {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationEfficiency,
			Title:           "Improve sleep efficiency",
			Description:     "A large share of time in bed was spent awake. Reserve the bed for sleep and get up after 20 minutes of wakefulness.",
			Priority:        4,
			EstimatedImpact: 0.15,
			Category:        domain.CategoryHabits,
		})
	}

	if analysis.DurationSeconds > 0 && analysis.DeepSleepPct < lowDeepPct {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationDeepSleep,
			Title:           "Increase deep sleep",
			Description:     "Deep sleep was below the 20% guideline. Keep the bedroom cool, avoid alcohol late, and finish exercise at least three hours before bed.",
			Priority:        4,
			EstimatedImpact: 0.15,
			Category:        domain.CategoryHabits,
		})
	}

	if analysis.DurationSeconds > 0 && analysis.RemSleepPct < lowRemPct {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationRemSleep,
			Title:           "Protect REM sleep",
			Description:     "REM sleep was below the 15% guideline. REM concentrates late in the night; avoid cutting sleep short in the morning.",
			Priority:        3,
			EstimatedImpact: 0.10,
			Category:        domain.CategoryHabits,
		})
	}

	recs = append(recs, environmentRules(env)...)

	if risk.Level == domain.RiskHigh || risk.Level == domain.RiskSevere {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationSchedule,
			Title:           "Stabilize your sleep schedule",
			Description:     "Your circadian disruption risk is elevated. Anchor wake time first: get up at the same time daily, including weekends.",
			Priority:        5,
			EstimatedImpact: 0.25,
			Category:        domain.CategoryConsistency,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})
	return recs
}

func environmentRules(env domain.SleepEnvironment) []domain.Recommendation {
	var recs []domain.Recommendation

	if env.RoomTemperature > roomTempMax {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationEnvironment,
			Title:           "Cool the bedroom",
			Description:     fmt.Sprintf("Room temperature of %.1f°C is above the 16-20°C band that supports deep sleep.", env.RoomTemperature),
			Priority:        3,
			EstimatedImpact: 0.10,
			Category:        domain.CategoryBedroom,
		})
	} else if env.RoomTemperature > 0 && env.RoomTemperature < roomTempMin {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationEnvironment,
			Title:           "Warm the bedroom",
			Description:     fmt.Sprintf("Room temperature of %.1f°C is below the 16-20°C comfort band.", env.RoomTemperature),
			Priority:        3,
			EstimatedImpact: 0.10,
			Category:        domain.CategoryBedroom,
		})
	}

	if env.LightLevel > lightCeil {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationEnvironment,
			Title:           "Darken the bedroom",
			Description:     "Ambient light in the bedroom is high. Use blackout curtains or a sleep mask.",
			Priority:        2,
			EstimatedImpact: 0.08,
			Category:        domain.CategoryBedroom,
		})
	}

	if env.NoiseLevel > noiseCeil {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationEnvironment,
			Title:           "Reduce bedroom noise",
			Description:     "Noise levels are high enough to fragment sleep. Consider earplugs or a white-noise source.",
			Priority:        2,
			EstimatedImpact: 0.08,
			Category:        domain.CategoryBedroom,
		})
	}

	if env.Humidity > 0 && (env.Humidity < humidityMin || env.Humidity > humidityMax) {
		recs = append(recs, domain.Recommendation{
			Type:            domain.RecommendationEnvironment,
			Title:           "Adjust bedroom humidity",
			Description:     fmt.Sprintf("Relative humidity of %.0f%% is outside the 30-60%% comfort band.", env.Humidity),
			Priority:        1,
			EstimatedImpact: 0.05,
			Category:        domain.CategoryBedroom,
		})
	}

	return recs
}

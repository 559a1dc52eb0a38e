package analysis

import (
	"fmt"
	"time"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// Sleep score weighting. Deep and REM ratios are capped at their targets so
// unusually deep nights do not inflate the score.
const (
	scoreDurationWeight   = 0.25
	scoreEfficiencyWeight = 0.30
	scoreDeepWeight       = 0.25
	scoreRemWeight        = 0.20

	deepSleepTarget = 0.25
	remSleepTarget  = 0.25
)

// Thresholds the deterministic insight strings key off.
const (
	lowEfficiency = 0.80
	lowDeepPct    = 0.20
	lowRemPct     = 0.15
	highAwakePct  = 0.15
)

// Aggregate reduces an ordered stage sequence to session-level metrics.
// Calling it twice on the same slice yields identical results; an empty
// sequence yields a zero-duration analysis, not an error.
func Aggregate(stages []domain.SleepStage) domain.SleepAnalysis {
	return AggregateWithTarget(stages, DefaultConfig().TargetSleepDuration)
}

// AggregateWithTarget aggregates against an explicit duration target (the
// target varies by chronotype).
func AggregateWithTarget(stages []domain.SleepStage, target time.Duration) domain.SleepAnalysis {
	analysis := domain.SleepAnalysis{Stages: stages}
	if len(stages) == 0 {
		return analysis
	}

	var total, awake, light, deep, rem time.Duration
	for _, s := range stages {
		d := s.EndAt.Sub(s.StartAt)
		total += d
		switch s.Kind {
		case domain.StageAwake:
			awake += d
		case domain.StageLight:
			light += d
		case domain.StageDeep:
			deep += d
		case domain.StageRem:
			rem += d
		}
	}

	analysis.DurationSeconds = total.Seconds()
	if total > 0 {
		analysis.Efficiency = (total - awake).Seconds() / total.Seconds()
		analysis.AwakePct = awake.Seconds() / total.Seconds()
		analysis.LightSleepPct = light.Seconds() / total.Seconds()
		analysis.DeepSleepPct = deep.Seconds() / total.Seconds()
		analysis.RemSleepPct = rem.Seconds() / total.Seconds()
	}

	analysis.SleepScore = sleepScore(analysis, target)
	analysis.Insights = sessionInsights(analysis)
	return analysis
}

// sleepScore is the weighted 0-1 quality score used by the recommendation
// and UX layers.
func sleepScore(a domain.SleepAnalysis, target time.Duration) float64 {
	if a.DurationSeconds == 0 {
		return 0
	}
	durationRatio := a.DurationSeconds / target.Seconds()
	if durationRatio > 1 {
		durationRatio = 1
	}
	deepRatio := a.DeepSleepPct / deepSleepTarget
	if deepRatio > 1 {
		deepRatio = 1
	}
	remRatio := a.RemSleepPct / remSleepTarget
	if remRatio > 1 {
		remRatio = 1
	}

	score := durationRatio*scoreDurationWeight +
		a.Efficiency*scoreEfficiencyWeight +
		deepRatio*scoreDeepWeight +
		remRatio*scoreRemWeight
	return clamp01(score)
}

// sessionInsights produces the deterministic per-session observations shown
// alongside the metrics.
func sessionInsights(a domain.SleepAnalysis) []string {
	var insights []string

	hours := a.DurationSeconds / 3600
	insights = append(insights, fmt.Sprintf("Slept %.1f hours at %.0f%% efficiency", hours, a.Efficiency*100))

	if a.Efficiency < lowEfficiency {
		insights = append(insights, "Sleep efficiency was below 80%; a notable share of the night was spent awake")
	}
	if a.DeepSleepPct < lowDeepPct {
		insights = append(insights, fmt.Sprintf("Deep sleep was %.0f%% of the night, under the 20%% guideline", a.DeepSleepPct*100))
	}
	if a.RemSleepPct < lowRemPct {
		insights = append(insights, fmt.Sprintf("REM sleep was %.0f%% of the night, under the 15%% guideline", a.RemSleepPct*100))
	}
	if a.AwakePct > highAwakePct {
		insights = append(insights, "Frequent or long awakenings detected")
	}
	return insights
}

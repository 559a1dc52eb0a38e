package analysis

import (
	"fmt"
	"math"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// Additive risk weights and their trigger thresholds.
const (
	riskWeightConsistency  = 0.30
	riskWeightWeekendShift = 0.20
	riskWeightLateLight    = 0.25
	riskWeightMorningLight = 0.20
	riskWeightMismatch     = 0.30
	riskWeightBlueLight    = 0.15

	riskConsistencyFloor  = 0.7
	riskWeekendShiftHours = 1.0
	riskLateLightCeil     = 0.3
	riskMorningLightFloor = 0.4
	riskMismatchCeil      = 0.5
	riskBlueLightCeil     = 0.4
)

// Mismatch is normalized over this many hours of bedtime offset.
const mismatchNormalizationHours = 6.0

// RiskScorer combines timing consistency, light exposure and
// chronotype/schedule mismatch into a bounded disruption risk.
type RiskScorer struct {
	cfg Config
}

// NewRiskScorer creates a scorer with the given configuration.
func NewRiskScorer(cfg Config) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

// Score evaluates each trigger independently and sums the fixed weights,
// clamping at 1.0. Every triggered condition contributes a factor string
// and a matching mitigation.
func (r *RiskScorer) Score(
	timing domain.SleepTimingAnalysis,
	light domain.LightExposureProfile,
	chronotype domain.Chronotype,
) domain.DisruptionRisk {
	score := 0.0
	var factors, mitigations []string

	add := func(weight float64, factor, mitigation string) {
		score += weight
		factors = append(factors, factor)
		mitigations = append(mitigations, mitigation)
	}

	if timing.SessionsUsed > 0 && timing.Consistency < riskConsistencyFloor {
		add(riskWeightConsistency,
			fmt.Sprintf("Irregular sleep schedule (consistency %.2f)", timing.Consistency),
			"Keep bed and wake times within the same hour every day")
	}
	if math.Abs(timing.WeekdayWeekendShift) > riskWeekendShiftHours {
		add(riskWeightWeekendShift,
			fmt.Sprintf("Weekday-to-weekend bedtime shift of %.1f hours", timing.WeekdayWeekendShift),
			"Limit weekend schedule drift to under an hour")
	}
	if light.LateNightExposure > riskLateLightCeil {
		add(riskWeightLateLight,
			"High late-night light exposure",
			"Dim lights and avoid screens in the hour before bed")
	}
	if light.MorningLightExposure < riskMorningLightFloor {
		add(riskWeightMorningLight,
			"Insufficient morning light exposure",
			"Get outdoor light within an hour of waking")
	}
	if mismatch := r.scheduleMismatch(timing, chronotype); mismatch > riskMismatchCeil {
		add(riskWeightMismatch,
			"Sleep schedule conflicts with chronotype",
			"Shift your bedtime toward your natural sleep window")
	}
	if light.BlueLightExposure > riskBlueLightCeil {
		add(riskWeightBlueLight,
			"High evening blue-light exposure",
			"Enable night mode or filter blue light in the evening")
	}

	if score > 1 {
		score = 1
	}

	return domain.DisruptionRisk{
		Level:           riskLevel(score),
		Score:           score,
		Factors:         factors,
		Recommendations: mitigations,
	}
}

// scheduleMismatch measures how far the observed average bedtime sits from
// the chronotype-preferred bedtime, normalized to [0,1].
func (r *RiskScorer) scheduleMismatch(timing domain.SleepTimingAnalysis, chronotype domain.Chronotype) float64 {
	if timing.SessionsUsed == 0 {
		return 0
	}
	preferred := wrapHours(r.cfg.BaselineBedtimeHour + chronotype.BedtimeAdjustment())
	offset := math.Abs(CircularDiffHours(timing.AverageBedtime, preferred))
	return clamp01(offset / mismatchNormalizationHours)
}

func riskLevel(score float64) domain.RiskLevel {
	switch {
	case score < 0.3:
		return domain.RiskLow
	case score < 0.6:
		return domain.RiskModerate
	case score < 0.8:
		return domain.RiskHigh
	default:
		return domain.RiskSevere
	}
}

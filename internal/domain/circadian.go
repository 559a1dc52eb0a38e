package domain

import "time"

// Chronotype is the user's disposition toward earlier or later sleep timing.
// @Description Chronotype classification derived from historical sleep timing.
type Chronotype string

const (
	ChronotypeEarlyBird Chronotype = "early_bird"
	ChronotypeNeutral   Chronotype = "neutral"
	ChronotypeNightOwl  Chronotype = "night_owl"
)

// BedtimeAdjustment is the fixed baseline bedtime/wake shift applied for
// this chronotype, in hours.
func (c Chronotype) BedtimeAdjustment() float64 {
	switch c {
	case ChronotypeEarlyBird:
		return -1.5
	case ChronotypeNightOwl:
		return 2.0
	default:
		return 0
	}
}

// DurationTargetBonus is the extra sleep-duration target for this chronotype.
func (c Chronotype) DurationTargetBonus() time.Duration {
	switch c {
	case ChronotypeEarlyBird:
		return 15 * time.Minute
	case ChronotypeNightOwl:
		return 30 * time.Minute
	default:
		return 0
	}
}

// SleepTimingAnalysis summarizes bed/wake timing across a session history.
// All time-of-day values are circular means in hours [0,24); variations are
// circular standard deviations in hours.
// @Description Circular timing statistics over a history of sessions.
type SleepTimingAnalysis struct {
	AverageBedtime    float64 `json:"average_bedtime" example:"23.4"`
	AverageWakeTime   float64 `json:"average_wake_time" example:"7.1"`
	BedtimeVariation  float64 `json:"bedtime_variation" example:"0.8"`
	WakeTimeVariation float64 `json:"wake_time_variation" example:"0.6"`
	// 1 = perfectly regular schedule, 0 = highly irregular
	Consistency float64 `json:"consistency" example:"0.65"`
	// Signed weekday-to-weekend bedtime shift in hours, wrapped into (-12,12]
	WeekdayWeekendShift float64 `json:"weekday_weekend_shift" example:"1.5"`
	SessionsUsed        int     `json:"sessions_used" example:"28"`
}

// CircadianPhaseAnalysis is the fused circadian phase estimate.
// Phase values are fractions of a 24h cycle with 0 at midnight.
// @Description Fused circadian phase estimate from independent markers.
type CircadianPhaseAnalysis struct {
	CurrentPhase float64 `json:"current_phase" example:"0.27"`
	// Signed hours relative to the population baseline phase
	PhaseShift float64 `json:"phase_shift" example:"0.5"`
	// Marker-agreement confidence, floored at 0.3
	Confidence       float64 `json:"confidence" example:"0.85"`
	TemperaturePhase float64 `json:"temperature_phase" example:"0.21"`
	HeartRatePhase   float64 `json:"heart_rate_phase" example:"0.17"`
	SleepPhase       float64 `json:"sleep_phase" example:"0.14"`
}

// RiskLevel buckets a disruption risk score.
// @Description Categorical circadian disruption risk level.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskSevere   RiskLevel = "severe"
)

// DisruptionRisk is the additive circadian disruption risk assessment.
// @Description Disruption risk score with contributing factors and mitigations.
type DisruptionRisk struct {
	Level RiskLevel `json:"level" example:"moderate"`
	Score float64   `json:"score" example:"0.45"`
	// Human-readable descriptions of each triggered condition
	Factors []string `json:"factors"`
	// Mitigation matching each factor
	Recommendations []string `json:"recommendations"`
}

// LightExposureProfile is produced by the light-exposure collaborator.
// All values are normalized to [0,1].
// @Description Daily light exposure profile.
type LightExposureProfile struct {
	MorningLightExposure float64 `json:"morning_light_exposure" example:"0.6"`
	LateNightExposure    float64 `json:"late_night_exposure" example:"0.2"`
	BlueLightExposure    float64 `json:"blue_light_exposure" example:"0.3"`
	TotalDailyExposure   float64 `json:"total_daily_exposure" example:"0.5"`
}

// SleepEnvironment describes the bedroom conditions during a session,
// supplied by the environment collaborator.
// @Description Bedroom environment readings.
type SleepEnvironment struct {
	// Room temperature in degrees Celsius
	RoomTemperature float64 `json:"room_temperature" example:"19.5"`
	// Relative humidity percentage
	Humidity float64 `json:"humidity" example:"45"`
	// Normalized ambient light level [0,1]
	LightLevel float64 `json:"light_level" example:"0.05"`
	// Normalized noise level [0,1]
	NoiseLevel float64 `json:"noise_level" example:"0.1"`
}

// CircadianRhythmAnalysis is the top-level circadian report, rebuilt from
// current inputs on every analysis call.
// @Description Complete circadian rhythm analysis for a user.
type CircadianRhythmAnalysis struct {
	Chronotype Chronotype             `json:"chronotype" example:"neutral"`
	Phase      CircadianPhaseAnalysis `json:"phase"`
	Timing     SleepTimingAnalysis    `json:"timing"`
	// Recommended bedtime/wake as local time-of-day hours [0,24)
	OptimalBedtime  float64 `json:"optimal_bedtime" example:"22.5"`
	OptimalWakeTime float64 `json:"optimal_wake_time" example:"6.5"`
	// Recommended sleep duration in seconds
	TargetSleepSeconds float64          `json:"target_sleep_seconds" example:"28800"`
	DisruptionRisk     DisruptionRisk   `json:"disruption_risk"`
	Recommendations    []Recommendation `json:"recommendations"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// Package analysis implements the sleep-intelligence core: feature
// extraction over sensor epochs, rule-based sleep staging, session metric
// aggregation, circular timing statistics, circadian phase estimation,
// disruption risk scoring and the recommendation rule engine.
//
// Everything in this package is a pure function of its inputs. Components
// hold configuration constants only and are safe for concurrent use; sparse
// or empty input degrades to documented neutral defaults instead of errors.
package analysis

import "time"

// Config carries the tunable constants of the analysis core. The reference
// values are taken as given rather than clinically re-derived.
type Config struct {
	// EpochLength is the fixed analysis window size.
	EpochLength time.Duration
	// ActivityWakeThreshold is the activity count above which an epoch is
	// flagged awake.
	ActivityWakeThreshold float64
	// SmoothingWindow is the number of epochs averaged when smoothing raw
	// stage scores. Sessions shorter than this skip smoothing.
	SmoothingWindow int

	// BaselinePhase is the population-baseline circadian phase as a
	// fraction of the 24h cycle (0.25 = 6 AM).
	BaselinePhase float64
	// Fusion weights for the three phase markers. Renormalized when a
	// marker is unavailable.
	TemperatureWeight float64
	HeartRateWeight   float64
	SleepWeight       float64
	// Fallback marker positions for sparse data.
	DefaultTemperaturePhaseHour float64
	DefaultHeartRatePhaseHour   float64
	DefaultSleepPhase           float64
	// MinMarkerSamples is the number of qualifying samples required before
	// a temperature or heart-rate marker is computed from data.
	MinMarkerSamples int
	// MarkerSmoothingWindow is the moving-average window applied to the
	// marker series before locating the minimum.
	MarkerSmoothingWindow int

	// MinSessionDuration filters out sessions too short to be sleep.
	MinSessionDuration time.Duration
	// MinChronotypeSessions is the history size required before a
	// chronotype other than neutral is reported.
	MinChronotypeSessions int

	// BaselineBedtimeHour and BaselineWakeHour anchor the optimal-schedule
	// suggestion before chronotype and phase adjustments.
	BaselineBedtimeHour float64
	BaselineWakeHour    float64
	// TargetSleepDuration is the base nightly duration target.
	TargetSleepDuration time.Duration
}

// DefaultConfig returns the reference constants.
func DefaultConfig() Config {
	return Config{
		EpochLength:           30 * time.Second,
		ActivityWakeThreshold: 5.0,
		SmoothingWindow:       3,

		BaselinePhase:               0.25,
		TemperatureWeight:           0.4,
		HeartRateWeight:             0.3,
		SleepWeight:                 0.3,
		DefaultTemperaturePhaseHour: 5.0,
		DefaultHeartRatePhaseHour:   4.0,
		DefaultSleepPhase:           0.25,
		MinMarkerSamples:            10,
		MarkerSmoothingWindow:       3,

		MinSessionDuration:    90 * time.Minute,
		MinChronotypeSessions: 7,

		BaselineBedtimeHour: 22.5,
		BaselineWakeHour:    6.5,
		TargetSleepDuration: 8 * time.Hour,
	}
}

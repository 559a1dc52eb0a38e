package analysis

import (
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// SeriesPoint is one (time-of-day, value) observation used for phase marker
// detection. Hour is local time-of-day in [0,24).
type SeriesPoint struct {
	Hour  float64
	Value float64
}

// phaseMarker is one independent phase estimate with its fusion weight.
type phaseMarker struct {
	phase     float64
	weight    float64
	available bool
}

// PhaseEstimator computes independent circadian phase markers and fuses them
// into a single phase estimate relative to the population baseline.
type PhaseEstimator struct {
	cfg Config
}

// NewPhaseEstimator creates an estimator with the given configuration.
func NewPhaseEstimator(cfg Config) *PhaseEstimator {
	return &PhaseEstimator{cfg: cfg}
}

// Analyze fuses the temperature, heart-rate and sleep-timing markers.
// Sparse marker inputs fall back to documented default positions; a marker
// with no input at all drops out of the fusion with the remaining weights
// renormalized.
func (e *PhaseEstimator) Analyze(
	temperature []SeriesPoint,
	heartRate []SeriesPoint,
	history []domain.SleepSession,
) domain.CircadianPhaseAnalysis {
	tempPhase := e.markerPhase(temperature, e.cfg.DefaultTemperaturePhaseHour)
	hrPhase := e.markerPhase(heartRate, e.cfg.DefaultHeartRatePhaseHour)
	sleepPhase := e.sleepPhase(history)

	markers := []phaseMarker{
		{phase: tempPhase, weight: e.cfg.TemperatureWeight, available: len(temperature) > 0},
		{phase: hrPhase, weight: e.cfg.HeartRateWeight, available: len(heartRate) > 0},
		{phase: sleepPhase, weight: e.cfg.SleepWeight, available: true},
	}
	current := fusePhases(markers, e.cfg.BaselinePhase)

	shift := CircularDiffHours(current*hoursPerCycle, e.cfg.BaselinePhase*hoursPerCycle)

	return domain.CircadianPhaseAnalysis{
		CurrentPhase:     current,
		PhaseShift:       shift,
		Confidence:       markerAgreement(tempPhase, hrPhase, sleepPhase),
		TemperaturePhase: tempPhase,
		HeartRatePhase:   hrPhase,
		SleepPhase:       sleepPhase,
	}
}

// markerPhase smooths the series with a moving average and returns the
// time-of-day of the minimum smoothed value as a phase fraction. Fewer than
// MinMarkerSamples qualifying points fall back to the default hour.
func (e *PhaseEstimator) markerPhase(points []SeriesPoint, defaultHour float64) float64 {
	if len(points) < e.cfg.MinMarkerSamples {
		return defaultHour / hoursPerCycle
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	smoothed := movingAverage(values, e.cfg.MarkerSmoothingWindow)

	minIdx := 0
	for i, v := range smoothed {
		if v < smoothed[minIdx] {
			minIdx = i
		}
	}
	return wrapHours(points[minIdx].Hour) / hoursPerCycle
}

// sleepPhase is the circular mean of session sleep midpoints as a phase
// fraction, defaulting to the configured phase when no history exists.
func (e *PhaseEstimator) sleepPhase(history []domain.SleepSession) float64 {
	var midpoints []float64
	for i := range history {
		if m := history[i].Midpoint(); m >= 0 {
			midpoints = append(midpoints, m)
		}
	}
	if len(midpoints) == 0 {
		return e.cfg.DefaultSleepPhase
	}
	return CircularMean(midpoints) / hoursPerCycle
}

// fusePhases combines marker phases with their weights, renormalizing when
// markers are unavailable rather than silently biasing toward the rest.
func fusePhases(markers []phaseMarker, baseline float64) float64 {
	totalWeight := 0.0
	for _, m := range markers {
		if m.available {
			totalWeight += m.weight
		}
	}
	if totalWeight == 0 {
		return baseline
	}

	fused := 0.0
	for _, m := range markers {
		if m.available {
			fused += m.phase * (m.weight / totalWeight)
		}
	}
	// phases are fractions; keep the fused value inside [0,1)
	return wrapHours(fused*hoursPerCycle) / hoursPerCycle
}

// markerAgreement measures how far apart the raw marker phases are. Tight
// agreement approaches 1; the floor of 0.3 reflects that the defaults alone
// still carry some information.
func markerAgreement(phases ...float64) float64 {
	maxDiff := 0.0
	for i := 0; i < len(phases); i++ {
		for j := i + 1; j < len(phases); j++ {
			if d := circularDistFraction(phases[i], phases[j]); d > maxDiff {
				maxDiff = d
			}
		}
	}
	confidence := 1 - 2*maxDiff
	if confidence < 0.3 {
		return 0.3
	}
	return confidence
}

package analysis

import (
	"time"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// Analyzer bundles the circadian components into the top-level report
// builder. Stateless apart from configuration; the report is rebuilt from
// current inputs on every call.
type Analyzer struct {
	cfg    Config
	phase  *PhaseEstimator
	timing *TimingAnalyzer
	risk   *RiskScorer
	engine *Engine
	now    func() time.Time
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		phase:  NewPhaseEstimator(cfg),
		timing: NewTimingAnalyzer(cfg),
		risk:   NewRiskScorer(cfg),
		engine: NewEngine(cfg),
		now:    time.Now,
	}
}

// AnalyzeCircadianRhythm builds the full circadian report from a session
// history, live sensor context, the light-exposure profile and the latest
// session's analysis and environment. All inputs may be sparse or empty.
func (a *Analyzer) AnalyzeCircadianRhythm(
	history []domain.SleepSession,
	live []domain.HealthDataPoint,
	light domain.LightExposureProfile,
	latest domain.SleepAnalysis,
	env domain.SleepEnvironment,
	loc *time.Location,
) domain.CircadianRhythmAnalysis {
	if loc == nil {
		loc = time.UTC
	}

	temperature, heartRate := splitLiveContext(live, loc)

	phase := a.phase.Analyze(temperature, heartRate, history)
	timing := a.timing.Analyze(history)
	chronotype := ClassifyChronotype(history, a.cfg)
	risk := a.risk.Score(timing, light, chronotype)

	target := a.cfg.TargetSleepDuration + chronotype.DurationTargetBonus()
	bedtime := wrapHours(a.cfg.BaselineBedtimeHour + chronotype.BedtimeAdjustment() + phase.PhaseShift)
	wake := wrapHours(bedtime + target.Hours())

	return domain.CircadianRhythmAnalysis{
		Chronotype:         chronotype,
		Phase:              phase,
		Timing:             timing,
		OptimalBedtime:     bedtime,
		OptimalWakeTime:    wake,
		TargetSleepSeconds: target.Seconds(),
		DisruptionRisk:     risk,
		Recommendations:    a.engine.Recommend(latest, risk, env),
		GeneratedAt:        a.now(),
	}
}

// splitLiveContext turns raw health data points into per-signal
// (time-of-day, value) series for phase marker detection.
func splitLiveContext(live []domain.HealthDataPoint, loc *time.Location) (temperature, heartRate []SeriesPoint) {
	for _, p := range live {
		local := p.Timestamp.In(loc)
		point := SeriesPoint{
			Hour:  float64(local.Hour()) + float64(local.Minute())/60.0,
			Value: p.Value,
		}
		switch p.Kind {
		case domain.SensorBodyTemperature:
			temperature = append(temperature, point)
		case domain.SensorHeartRate:
			heartRate = append(heartRate, point)
		}
	}
	return temperature, heartRate
}

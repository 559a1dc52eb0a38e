package analysis

import (
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// consistencyVariationSpan is the combined bedtime+wake variation (hours)
// at which the consistency score bottoms out at 0.
const consistencyVariationSpan = 4.0

// TimingAnalyzer computes circular timing statistics over a session history.
type TimingAnalyzer struct {
	cfg Config
}

// NewTimingAnalyzer creates an analyzer with the given configuration.
func NewTimingAnalyzer(cfg Config) *TimingAnalyzer {
	return &TimingAnalyzer{cfg: cfg}
}

// Analyze reduces a history of sessions to average bed/wake times, their
// circular variation, a consistency score in [0,1], and the signed
// weekday-to-weekend bedtime shift wrapped into (-12,12]. Unfinished or
// very short sessions are skipped; an empty usable history yields zeros.
func (a *TimingAnalyzer) Analyze(history []domain.SleepSession) domain.SleepTimingAnalysis {
	var (
		bedtimes, wakeTimes []float64
		weekdayBeds         []float64
		weekendBeds         []float64
	)
	for i := range history {
		s := &history[i]
		if s.EndedAt == nil || s.EndedAt.Sub(s.StartedAt) < a.cfg.MinSessionDuration {
			continue
		}
		bed := s.Bedtime()
		bedtimes = append(bedtimes, bed)
		wakeTimes = append(wakeTimes, s.WakeTime())
		if s.IsWeekend() {
			weekendBeds = append(weekendBeds, bed)
		} else {
			weekdayBeds = append(weekdayBeds, bed)
		}
	}

	if len(bedtimes) == 0 {
		return domain.SleepTimingAnalysis{}
	}

	bedVariation := CircularStdDev(bedtimes)
	wakeVariation := CircularStdDev(wakeTimes)

	consistency := 1 - (bedVariation+wakeVariation)/consistencyVariationSpan
	if consistency < 0 {
		consistency = 0
	}

	shift := 0.0
	if len(weekdayBeds) > 0 && len(weekendBeds) > 0 {
		shift = CircularDiffHours(CircularMean(weekendBeds), CircularMean(weekdayBeds))
	}

	return domain.SleepTimingAnalysis{
		AverageBedtime:      CircularMean(bedtimes),
		AverageWakeTime:     CircularMean(wakeTimes),
		BedtimeVariation:    bedVariation,
		WakeTimeVariation:   wakeVariation,
		Consistency:         consistency,
		WeekdayWeekendShift: shift,
		SessionsUsed:        len(bedtimes),
	}
}

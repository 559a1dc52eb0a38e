package analysis

import (
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// Mid-sleep thresholds in local hours after midnight. Mid-sleep before
// 02:30 marks an early bird, 04:30 or later a night owl.
const (
	earlyBirdMidSleepHour = 2.5
	nightOwlMidSleepHour  = 4.5
)

// ClassifyChronotype derives the chronotype from the circular mean of
// session mid-sleep times. Histories smaller than MinChronotypeSessions
// report neutral rather than guessing from thin data.
func ClassifyChronotype(history []domain.SleepSession, cfg Config) domain.Chronotype {
	var midpoints []float64
	for i := range history {
		s := &history[i]
		if s.EndedAt == nil || s.EndedAt.Sub(s.StartedAt) < cfg.MinSessionDuration {
			continue
		}
		midpoints = append(midpoints, s.Midpoint())
	}
	if len(midpoints) < cfg.MinChronotypeSessions {
		return domain.ChronotypeNeutral
	}

	// center the mean around midnight so a 23:45 midpoint reads as -0.25h
	mid := CircularMean(midpoints)
	if mid > 12 {
		mid -= 24
	}

	switch {
	case mid < earlyBirdMidSleepHour:
		return domain.ChronotypeEarlyBird
	case mid >= nightOwlMidSleepHour:
		return domain.ChronotypeNightOwl
	default:
		return domain.ChronotypeNeutral
	}
}

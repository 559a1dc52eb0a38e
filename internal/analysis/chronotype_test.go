package analysis

import (
	"testing"
	"time"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

func nightsWithBedtime(hour float64, nights int) []domain.SleepSession {
	var history []domain.SleepSession
	for day := 0; day < nights; day++ {
		h := int(hour)
		m := int((hour - float64(h)) * 60)
		start := time.Date(2024, 1, 8+day, h, m, 0, 0, time.UTC)
		history = append(history, completedSession(start, 8))
	}
	return history
}

func TestClassifyChronotype(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		history []domain.SleepSession
		want    domain.Chronotype
	}{
		{
			// bedtime 21:00, midpoint 01:00
			name:    "early schedule classifies as early bird",
			history: nightsWithBedtime(21, 10),
			want:    domain.ChronotypeEarlyBird,
		},
		{
			// bedtime 23:30, midpoint 03:30
			name:    "typical schedule classifies as neutral",
			history: nightsWithBedtime(23.5, 10),
			want:    domain.ChronotypeNeutral,
		},
		{
			// bedtime 01:30, midpoint 05:30
			name:    "late schedule classifies as night owl",
			history: nightsWithBedtime(1.5, 10),
			want:    domain.ChronotypeNightOwl,
		},
		{
			name:    "thin history stays neutral",
			history: nightsWithBedtime(1.5, 3),
			want:    domain.ChronotypeNeutral,
		},
		{
			name:    "no history stays neutral",
			history: nil,
			want:    domain.ChronotypeNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyChronotype(tt.history, cfg); got != tt.want {
				t.Errorf("ClassifyChronotype() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChronotypeAdjustments(t *testing.T) {
	if got := domain.ChronotypeEarlyBird.BedtimeAdjustment(); got != -1.5 {
		t.Errorf("early bird bedtime adjustment = %v, want -1.5", got)
	}
	if got := domain.ChronotypeNightOwl.BedtimeAdjustment(); got != 2.0 {
		t.Errorf("night owl bedtime adjustment = %v, want 2.0", got)
	}
	if got := domain.ChronotypeNeutral.BedtimeAdjustment(); got != 0 {
		t.Errorf("neutral bedtime adjustment = %v, want 0", got)
	}
	if got := domain.ChronotypeEarlyBird.DurationTargetBonus(); got != 15*time.Minute {
		t.Errorf("early bird duration bonus = %v, want 15m", got)
	}
	if got := domain.ChronotypeNightOwl.DurationTargetBonus(); got != 30*time.Minute {
		t.Errorf("night owl duration bonus = %v, want 30m", got)
	}
}

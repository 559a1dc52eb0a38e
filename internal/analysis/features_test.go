package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

func f64(v float64) *float64 { return &v }

func hrSample(ts time.Time, bpm float64) domain.SensorSample {
	return domain.SensorSample{Timestamp: ts, Kind: domain.SensorHeartRate, Value: bpm}
}

func TestExtract_RMSSDKnownSequences(t *testing.T) {
	base := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		bpm       []float64
		wantRMSSD float64
		wantSDNN  float64
	}{
		{
			name:      "constant heart rate has zero variability",
			bpm:       []float64{60, 60, 60},
			wantRMSSD: 0,
			wantSDNN:  0,
		},
		{
			name: "doubling heart rate halves the RR interval",
			// RR [1, 0.5]s, one successive difference of -0.5
			bpm:       []float64{60, 120},
			wantRMSSD: 0.5,
			wantSDNN:  0.25,
		},
		{
			name:      "single sample cannot produce variability",
			bpm:       []float64{60},
			wantRMSSD: 0,
			wantSDNN:  0,
		},
	}

	extractor := NewExtractor(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []domain.SensorSample
			for i, bpm := range tt.bpm {
				samples = append(samples, hrSample(base.Add(time.Duration(i)*5*time.Second), bpm))
			}

			w := extractor.Extract(samples)
			if math.Abs(w.RMSSD-tt.wantRMSSD) > 1e-9 {
				t.Errorf("RMSSD = %v, want %v", w.RMSSD, tt.wantRMSSD)
			}
			if math.Abs(w.SDNN-tt.wantSDNN) > 1e-9 {
				t.Errorf("SDNN = %v, want %v", w.SDNN, tt.wantSDNN)
			}
		})
	}
}

func TestExtract_EmptyInputIsSafe(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	w := extractor.Extract(nil)

	if w.RMSSD != 0 || w.SDNN != 0 || w.HeartRateAvg != 0 || w.HeartRateStdDev != 0 ||
		w.SpO2Avg != 0 || w.SpO2StdDev != 0 || w.ActivityCount != 0 ||
		w.SleepWakeFlag != 0 || w.WristTempAvg != 0 || w.WristTempGradient != 0 {
		t.Errorf("Extract(nil) produced non-zero features: %+v", w)
	}
	if w.Timestamp.IsZero() {
		t.Error("Extract(nil) should stamp the window with the current time")
	}
}

func TestExtract_ActivityAndSleepWakeFlag(t *testing.T) {
	base := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	extractor := NewExtractor(DefaultConfig())

	accel := func(x, y, z float64) domain.SensorSample {
		return domain.SensorSample{
			Timestamp: base, Kind: domain.SensorAccelerometer,
			AxisX: f64(x), AxisY: f64(y), AxisZ: f64(z),
		}
	}

	t.Run("still wrist stays below the wake threshold", func(t *testing.T) {
		w := extractor.Extract([]domain.SensorSample{accel(1, 0, 0), accel(0, 1, 0)})
		if w.ActivityCount != 2 {
			t.Errorf("ActivityCount = %v, want 2", w.ActivityCount)
		}
		if w.SleepWakeFlag != 0 {
			t.Errorf("SleepWakeFlag = %v, want 0", w.SleepWakeFlag)
		}
	})

	t.Run("vigorous movement trips the wake flag", func(t *testing.T) {
		w := extractor.Extract([]domain.SensorSample{accel(3, 4, 0), accel(0, 0, 2)})
		if w.ActivityCount != 7 {
			t.Errorf("ActivityCount = %v, want 7", w.ActivityCount)
		}
		if w.SleepWakeFlag != 1 {
			t.Errorf("SleepWakeFlag = %v, want 1", w.SleepWakeFlag)
		}
	})

	t.Run("sample missing an axis contributes zero", func(t *testing.T) {
		partial := domain.SensorSample{
			Timestamp: base, Kind: domain.SensorAccelerometer,
			AxisX: f64(10), AxisY: f64(10),
		}
		w := extractor.Extract([]domain.SensorSample{partial, accel(1, 0, 0)})
		if w.ActivityCount != 1 {
			t.Errorf("ActivityCount = %v, want 1", w.ActivityCount)
		}
	})
}

func TestExtract_TemperatureGradient(t *testing.T) {
	base := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	extractor := NewExtractor(DefaultConfig())

	temp := func(offset time.Duration, v float64) domain.SensorSample {
		return domain.SensorSample{Timestamp: base.Add(offset), Kind: domain.SensorBodyTemperature, Value: v}
	}

	w := extractor.Extract([]domain.SensorSample{
		temp(0, 36.5), temp(10*time.Second, 36.3), temp(20*time.Second, 36.1),
	})
	if math.Abs(w.WristTempGradient-(-0.4)) > 1e-9 {
		t.Errorf("WristTempGradient = %v, want -0.4", w.WristTempGradient)
	}
	if math.Abs(w.WristTempAvg-36.3) > 1e-9 {
		t.Errorf("WristTempAvg = %v, want 36.3", w.WristTempAvg)
	}

	single := extractor.Extract([]domain.SensorSample{temp(0, 36.5)})
	if single.WristTempGradient != 0 {
		t.Errorf("gradient with one sample = %v, want 0", single.WristTempGradient)
	}
}

func TestExtract_TimestampIsLastSample(t *testing.T) {
	base := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	extractor := NewExtractor(DefaultConfig())

	last := base.Add(25 * time.Second)
	w := extractor.Extract([]domain.SensorSample{hrSample(base, 60), hrSample(last, 62)})
	if !w.Timestamp.Equal(last) {
		t.Errorf("Timestamp = %v, want %v", w.Timestamp, last)
	}
}

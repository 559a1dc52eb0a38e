package analysis

import (
	"math"
	"time"

	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// Extractor converts raw sensor samples for one epoch into a feature record.
// It never errors: missing signal categories degrade to neutral zeros.
type Extractor struct {
	cfg Config
	now func() time.Time
}

// NewExtractor creates an extractor with the given configuration.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg, now: time.Now}
}

// Extract computes the feature record for one epoch of samples. An empty
// slice yields an all-zero record stamped with the current time.
func (e *Extractor) Extract(samples []domain.SensorSample) domain.FeatureWindow {
	var (
		heartRates []float64
		spo2       []float64
		temps      []domain.SensorSample
		accel      []domain.SensorSample
	)
	for _, s := range samples {
		switch s.Kind {
		case domain.SensorHeartRate:
			heartRates = append(heartRates, s.Value)
		case domain.SensorOxygenSaturation:
			spo2 = append(spo2, s.Value)
		case domain.SensorBodyTemperature:
			temps = append(temps, s)
		case domain.SensorAccelerometer:
			accel = append(accel, s)
		}
	}

	rmssd, sdnn := hrvFromHeartRates(heartRates)
	activity := activityCount(accel)

	w := domain.FeatureWindow{
		RMSSD:           rmssd,
		SDNN:            sdnn,
		HeartRateAvg:    mean(heartRates),
		HeartRateStdDev: stdDev(heartRates),
		SpO2Avg:         mean(spo2),
		SpO2StdDev:      stdDev(spo2),
		ActivityCount:   activity,
	}
	if activity > e.cfg.ActivityWakeThreshold {
		w.SleepWakeFlag = 1.0
	}

	if len(temps) > 0 {
		tempValues := make([]float64, len(temps))
		for i, t := range temps {
			tempValues[i] = t.Value
		}
		w.WristTempAvg = mean(tempValues)
		if len(temps) > 1 {
			w.WristTempGradient = temps[len(temps)-1].Value - temps[0].Value
		}
	}

	if len(samples) > 0 {
		w.Timestamp = samples[len(samples)-1].Timestamp
	} else {
		w.Timestamp = e.now()
	}
	return w
}

// hrvFromHeartRates derives RR intervals as 60/bpm seconds and computes
// RMSSD over successive differences and SDNN as the population standard
// deviation. Fewer than two usable heart-rate samples yield zeros.
func hrvFromHeartRates(heartRates []float64) (rmssd, sdnn float64) {
	var rr []float64
	for _, hr := range heartRates {
		if hr > 0 {
			rr = append(rr, 60.0/hr)
		}
	}
	if len(rr) < 2 {
		return 0, 0
	}

	sumSquares := 0.0
	for i := 1; i < len(rr); i++ {
		diff := rr[i] - rr[i-1]
		sumSquares += diff * diff
	}
	rmssd = math.Sqrt(sumSquares / float64(len(rr)-1))
	sdnn = stdDev(rr)
	return rmssd, sdnn
}

// activityCount sums the 3-D magnitude of accelerometer samples. A sample
// missing any axis contributes zero.
func activityCount(accel []domain.SensorSample) float64 {
	total := 0.0
	for _, s := range accel {
		if s.AxisX == nil || s.AxisY == nil || s.AxisZ == nil {
			continue
		}
		total += math.Sqrt((*s.AxisX)*(*s.AxisX) + (*s.AxisY)*(*s.AxisY) + (*s.AxisZ)*(*s.AxisZ))
	}
	return total
}

package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SensorKind identifies the physiological signal a sample carries.
// @Description Kind of physiological sensor sample.
type SensorKind string

const (
	SensorHeartRate        SensorKind = "HEART_RATE"
	SensorHRV              SensorKind = "HRV"
	SensorOxygenSaturation SensorKind = "OXYGEN_SATURATION"
	SensorBodyTemperature  SensorKind = "BODY_TEMPERATURE"
	SensorAccelerometer    SensorKind = "ACCELEROMETER"
)

// SensorSample is a single time-stamped reading from the acquisition layer.
// Accelerometer samples carry the three axis values; Value is unused for them.
type SensorSample struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID  `gorm:"type:uuid;not null;index:idx_samples_session_ts" json:"session_id"`
	Timestamp time.Time  `gorm:"not null;index:idx_samples_session_ts,sort:asc" json:"timestamp"`
	Kind      SensorKind `gorm:"type:varchar(32);not null" json:"kind"`
	Value     float64    `gorm:"not null" json:"value"`
	AxisX     *float64   `json:"axis_x,omitempty"`
	AxisY     *float64   `json:"axis_y,omitempty"`
	AxisZ     *float64   `json:"axis_z,omitempty"`

	// Associations
	Session SleepSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SensorSample) TableName() string {
	return "sensor_samples"
}

// Validate rejects samples whose values cannot be zeroed without hiding a
// caller bug. Sparse data is fine; NaN heart rates are not.
func (s *SensorSample) Validate() error {
	if s.Timestamp.IsZero() {
		return ErrInvalidInput
	}
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return ErrInvalidInput
	}
	switch s.Kind {
	case SensorHeartRate, SensorOxygenSaturation:
		if s.Value < 0 {
			return ErrInvalidInput
		}
	case SensorAccelerometer:
		for _, axis := range []*float64{s.AxisX, s.AxisY, s.AxisZ} {
			if axis != nil && (math.IsNaN(*axis) || math.IsInf(*axis, 0)) {
				return ErrInvalidInput
			}
		}
	case SensorHRV, SensorBodyTemperature:
		// any finite value is plausible
	default:
		return ErrInvalidInput
	}
	return nil
}

// HealthDataPoint is a sensor reading outside any tracked session, used as
// live context for circadian phase estimation.
type HealthDataPoint struct {
	Timestamp time.Time  `json:"timestamp"`
	Kind      SensorKind `json:"kind"`
	Value     float64    `json:"value"`
}

// FeatureWindow holds the hand-computed features for one analysis epoch.
// Derived from raw samples, never mutated after creation.
// @Description Per-epoch feature record derived from sensor samples.
type FeatureWindow struct {
	RMSSD             float64   `json:"rmssd"`
	SDNN              float64   `json:"sdnn"`
	HeartRateAvg      float64   `json:"heart_rate_avg"`
	HeartRateStdDev   float64   `json:"heart_rate_std_dev"`
	SpO2Avg           float64   `json:"spo2_avg"`
	SpO2StdDev        float64   `json:"spo2_std_dev"`
	ActivityCount     float64   `json:"activity_count"`
	SleepWakeFlag     float64   `json:"sleep_wake_flag"`
	WristTempAvg      float64   `json:"wrist_temp_avg"`
	WristTempGradient float64   `json:"wrist_temp_gradient"`
	Timestamp         time.Time `json:"timestamp"`
}

// IngestSamplesRequest is the request body for batch sample ingestion.
// @Description Batch of sensor samples for an active session.
type IngestSamplesRequest struct {
	Samples []IngestSample `json:"samples" validate:"required,min=1,max=10000,dive"`
}

// IngestSample is a single sample in an ingestion batch.
type IngestSample struct {
	// Sample timestamp in RFC3339 format
	Timestamp time.Time `json:"timestamp" validate:"required" example:"2024-01-15T23:30:00Z"`
	// Signal kind
	Kind SensorKind `json:"kind" validate:"required,oneof=HEART_RATE HRV OXYGEN_SATURATION BODY_TEMPERATURE ACCELEROMETER" example:"HEART_RATE"`
	// Scalar value (BPM, ms, %, degrees C); unused for accelerometer samples
	Value float64 `json:"value" example:"58.5"`
	// Accelerometer axes in g
	AxisX *float64 `json:"axis_x,omitempty"`
	AxisY *float64 `json:"axis_y,omitempty"`
	AxisZ *float64 `json:"axis_z,omitempty"`
}

// ToSample converts an ingestion entry to a persisted sensor sample.
func (in *IngestSample) ToSample(sessionID uuid.UUID) SensorSample {
	return SensorSample{
		SessionID: sessionID,
		Timestamp: in.Timestamp,
		Kind:      in.Kind,
		Value:     in.Value,
		AxisX:     in.AxisX,
		AxisY:     in.AxisY,
		AxisZ:     in.AxisZ,
	}
}

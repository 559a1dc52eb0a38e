// Package environment provides the collaborator interfaces around the
// analysis core: light exposure profiles and bedroom conditions. Production
// implementations are deterministic; tests substitute fakes.
package environment

import (
	"context"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// LightExposureSource supplies a user's daily light exposure profile.
type LightExposureSource interface {
	Profile(ctx context.Context, userID uuid.UUID) (domain.LightExposureProfile, error)
}

// Sensor supplies the bedroom conditions for recommendation rules.
type Sensor interface {
	Conditions(ctx context.Context, userID uuid.UUID) (domain.SleepEnvironment, error)
}

// StaticLightSource returns the same configured profile for every user.
// Used when no light-sensing integration is wired up.
type StaticLightSource struct {
	profile domain.LightExposureProfile
}

func NewStaticLightSource(profile domain.LightExposureProfile) *StaticLightSource {
	return &StaticLightSource{profile: profile}
}

// DefaultLightProfile is a moderate baseline: decent morning light, some
// evening screen exposure.
func DefaultLightProfile() domain.LightExposureProfile {
	return domain.LightExposureProfile{
		MorningLightExposure: 0.5,
		LateNightExposure:    0.2,
		BlueLightExposure:    0.3,
		TotalDailyExposure:   0.5,
	}
}

func (s *StaticLightSource) Profile(ctx context.Context, userID uuid.UUID) (domain.LightExposureProfile, error) {
	return s.profile, nil
}

// StaticSensor returns the same configured bedroom conditions for every user.
type StaticSensor struct {
	env domain.SleepEnvironment
}

func NewStaticSensor(env domain.SleepEnvironment) *StaticSensor {
	return &StaticSensor{env: env}
}

// DefaultConditions is a comfortable bedroom: 19 degrees, 45% humidity,
// dark and quiet.
func DefaultConditions() domain.SleepEnvironment {
	return domain.SleepEnvironment{
		RoomTemperature: 19,
		Humidity:        45,
		LightLevel:      0.05,
		NoiseLevel:      0.1,
	}
}

func (s *StaticSensor) Conditions(ctx context.Context, userID uuid.UUID) (domain.SleepEnvironment, error) {
	return s.env, nil
}

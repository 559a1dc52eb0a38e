package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"gorm.io/gorm"
)

const seededNights = 30

// Run seeds the database with sample users and finalized sleep sessions.
// Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.SleepSession{}, &domain.SensorSample{}, &domain.SleepStage{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedSessionsForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

// seedSessionsForUser writes one finalized session per night with a plausible
// hypnogram: settling, alternating deep/light through the first half, REM
// weighted toward the last third.
func seedSessionsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	now := time.Now().UTC()
	for i := 1; i <= seededNights; i++ {
		date := now.AddDate(0, 0, -i)
		bedtime := time.Date(date.Year(), date.Month(), date.Day(), 22+rng.Intn(2), rng.Intn(60), 0, 0, time.UTC)
		wake := bedtime.Add(time.Duration(7*3600+rng.Intn(5400)) * time.Second)

		sessionID := seededSessionID(user.ID, i)

		var count int64
		if err := db.Model(&domain.SleepSession{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check session %s: %w", sessionID, err)
		}
		if count > 0 {
			continue
		}

		stages := buildHypnogram(sessionID, bedtime, wake, rng)
		session := summarize(sessionID, user, bedtime, wake, stages)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&session).Error; err != nil {
				return err
			}
			return tx.CreateInBatches(stages, 200).Error
		})
		if err != nil {
			return fmt.Errorf("failed to seed session %s: %w", sessionID, err)
		}
	}
	log.Printf("Seeded sessions for user %s (%s)", user.ID, user.Timezone)
	return nil
}

// seededSessionID derives a stable per-night UUID so reruns skip existing rows.
func seededSessionID(userID uuid.UUID, night int) uuid.UUID {
	return uuid.NewSHA1(userID, []byte(fmt.Sprintf("seed-session-%d", night)))
}

func buildHypnogram(sessionID uuid.UUID, start, end time.Time, rng *rand.Rand) []domain.SleepStage {
	total := end.Sub(start)
	var stages []domain.SleepStage
	cursor := start

	appendStage := func(kind domain.StageKind, d time.Duration) {
		if d <= 0 || !cursor.Before(end) {
			return
		}
		stageEnd := cursor.Add(d)
		if stageEnd.After(end) {
			stageEnd = end
		}
		stages = append(stages, domain.SleepStage{
			SessionID:  sessionID,
			Kind:       kind,
			StartAt:    cursor,
			EndAt:      stageEnd,
			Confidence: 0.6 + rng.Float64()*0.35,
		})
		cursor = stageEnd
	}

	// Settling period before sleep onset.
	appendStage(domain.StageAwake, time.Duration(5+rng.Intn(15))*time.Minute)

	// Alternate light/deep cycles until the last third, then favor REM.
	remBoundary := start.Add(total * 2 / 3)
	for cursor.Before(end) {
		if cursor.Before(remBoundary) {
			appendStage(domain.StageLight, time.Duration(30+rng.Intn(40))*time.Minute)
			appendStage(domain.StageDeep, time.Duration(20+rng.Intn(30))*time.Minute)
		} else {
			appendStage(domain.StageRem, time.Duration(15+rng.Intn(25))*time.Minute)
			appendStage(domain.StageLight, time.Duration(15+rng.Intn(25))*time.Minute)
		}
		// Brief awakening between cycles.
		if rng.Float32() < 0.3 {
			appendStage(domain.StageAwake, time.Duration(1+rng.Intn(4))*time.Minute)
		}
	}

	return stages
}

func summarize(sessionID uuid.UUID, user domain.User, start, end time.Time, stages []domain.SleepStage) domain.SleepSession {
	totals := map[domain.StageKind]float64{}
	for _, stage := range stages {
		totals[stage.Kind] += stage.Duration().Seconds()
	}

	duration := end.Sub(start).Seconds()
	asleep := totals[domain.StageLight] + totals[domain.StageDeep] + totals[domain.StageRem]
	efficiency := 0.0
	if duration > 0 {
		efficiency = asleep / duration
	}

	pct := func(kind domain.StageKind) float64 {
		if duration == 0 {
			return 0
		}
		return totals[kind] / duration
	}

	// Simple score blend mirroring the analyzer's weighting so seeded data
	// looks like finalized sessions.
	score := 0.4*efficiency + 0.3*clamp01(pct(domain.StageDeep)/0.20) + 0.3*clamp01(pct(domain.StageRem)/0.25)

	ended := end
	return domain.SleepSession{
		ID:              sessionID,
		UserID:          user.ID,
		Status:          domain.SessionCompleted,
		StartedAt:       start,
		EndedAt:         &ended,
		LocalTimezone:   user.Timezone,
		DurationSeconds: duration,
		Efficiency:      efficiency,
		DeepSleepPct:    pct(domain.StageDeep),
		RemSleepPct:     pct(domain.StageRem),
		LightSleepPct:   pct(domain.StageLight),
		AwakePct:        pct(domain.StageAwake),
		SleepScore:      clamp01(score),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

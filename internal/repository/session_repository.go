package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/pkg/pagination"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.SleepSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepSession, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.SleepSession, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]domain.SleepSession, error)
	History(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SleepSession, error)
	LatestCompleted(ctx context.Context, userID uuid.UUID) (*domain.SleepSession, error)
	AppendSamples(ctx context.Context, samples []domain.SensorSample) error
	SamplesBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SensorSample, error)
	RecentSamples(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SensorSample, error)
	Finalize(ctx context.Context, session *domain.SleepSession, stages []domain.SleepStage) error
	StagesBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SleepStage, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.SleepSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepSession, error) {
	var session domain.SleepSession
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("start_at ASC") }).
		First(&session, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetActive returns the user's TRACKING session, or ErrNoActiveSession.
// At most one session per user is TRACKING at any time.
func (r *sessionRepository) GetActive(ctx context.Context, userID uuid.UUID) (*domain.SleepSession, error) {
	var session domain.SleepSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.SessionTracking).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNoActiveSession
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) ([]domain.SleepSession, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC")

	// Apply time filters
	if filter.From != nil {
		query = query.Where("started_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("started_at <= ?", filter.To)
	}

	// Apply cursor pagination
	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: get records with started_at < cursor.StartedAt
			// or same started_at but id < cursor.ID
			query = query.Where(
				"(started_at < ?) OR (started_at = ? AND id < ?)",
				cursor.StartedAt, cursor.StartedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var sessions []domain.SleepSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// History returns the user's completed sessions started at or after the
// given time, oldest first, for circadian analysis.
func (r *sessionRepository) History(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SleepSession, error) {
	var sessions []domain.SleepSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND started_at >= ?", userID, domain.SessionCompleted, since).
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) LatestCompleted(ctx context.Context, userID uuid.UUID) (*domain.SleepSession, error) {
	var session domain.SleepSession
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("start_at ASC") }).
		Where("user_id = ? AND status = ?", userID, domain.SessionCompleted).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) AppendSamples(ctx context.Context, samples []domain.SensorSample) error {
	if len(samples) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(samples, 500).Error
}

func (r *sessionRepository) SamplesBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SensorSample, error) {
	var samples []domain.SensorSample
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// RecentSamples returns samples across all of the user's sessions since the
// given time, for live circadian phase context.
func (r *sessionRepository) RecentSamples(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SensorSample, error) {
	var samples []domain.SensorSample
	err := r.db.WithContext(ctx).
		Joins("JOIN sleep_sessions ON sleep_sessions.id = sensor_samples.session_id").
		Where("sleep_sessions.user_id = ? AND sensor_samples.timestamp >= ?", userID, since).
		Order("sensor_samples.timestamp ASC").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// Finalize persists the stage sequence and the session's analysis summary
// atomically. The session status must already be set to COMPLETED by the
// caller; a session is finalized at most once.
func (r *sessionRepository) Finalize(ctx context.Context, session *domain.SleepSession, stages []domain.SleepStage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(stages) > 0 {
			if err := tx.CreateInBatches(stages, 500).Error; err != nil {
				return err
			}
		}
		return tx.Model(&domain.SleepSession{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"status":           session.Status,
				"ended_at":         session.EndedAt,
				"duration_seconds": session.DurationSeconds,
				"efficiency":       session.Efficiency,
				"deep_sleep_pct":   session.DeepSleepPct,
				"rem_sleep_pct":    session.RemSleepPct,
				"light_sleep_pct":  session.LightSleepPct,
				"awake_pct":        session.AwakePct,
				"sleep_score":      session.SleepScore,
			}).Error
	})
}

func (r *sessionRepository) StagesBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SleepStage, error) {
	var stages []domain.SleepStage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("start_at ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

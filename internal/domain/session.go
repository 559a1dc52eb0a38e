package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus tracks the session lifecycle owned by the tracking service.
// @Description Session lifecycle state: TRACKING until finalized, then COMPLETED.
type SessionStatus string

const (
	SessionTracking  SessionStatus = "TRACKING"
	SessionCompleted SessionStatus = "COMPLETED"
)

// StageKind is a sleep stage category.
// @Description Sleep stage: AWAKE, LIGHT, DEEP or REM.
type StageKind string

const (
	StageAwake StageKind = "AWAKE"
	StageLight StageKind = "LIGHT"
	StageDeep  StageKind = "DEEP"
	StageRem   StageKind = "REM"
)

// SleepStage is one span of the session hypnogram. Stages are time-ordered
// and non-overlapping within a session.
type SleepStage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_stages_session_start" json:"session_id"`
	Kind      StageKind `gorm:"type:varchar(10);not null" json:"kind"`
	StartAt   time.Time `gorm:"not null;index:idx_stages_session_start,sort:asc" json:"start_at"`
	EndAt     time.Time `gorm:"not null" json:"end_at"`
	// Normalized margin between the best and second-best stage scores
	Confidence float64 `gorm:"not null" json:"confidence"`

	// Associations
	Session SleepSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepStage) TableName() string {
	return "sleep_stages"
}

// Duration returns the stage span length.
func (s *SleepStage) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// SleepSession is one tracked sleep period. Created at tracking start and
// finalized exactly once; the analysis summary columns are written on
// finalization and immutable afterwards.
type SleepSession struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index:idx_sessions_user_start" json:"user_id"`
	Status        SessionStatus `gorm:"type:varchar(10);not null" json:"status"`
	StartedAt     time.Time     `gorm:"not null;index:idx_sessions_user_start,sort:desc" json:"started_at"`
	EndedAt       *time.Time    `json:"ended_at,omitempty"`
	LocalTimezone string        `gorm:"type:varchar(64);not null;default:'UTC'" json:"local_timezone"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`

	// Analysis summary, populated on finalization
	DurationSeconds float64 `json:"duration_seconds"`
	Efficiency      float64 `json:"efficiency"`
	DeepSleepPct    float64 `json:"deep_sleep_pct"`
	RemSleepPct     float64 `json:"rem_sleep_pct"`
	LightSleepPct   float64 `json:"light_sleep_pct"`
	AwakePct        float64 `json:"awake_pct"`
	SleepScore      float64 `json:"sleep_score"`

	// Associations
	User   User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Stages []SleepStage `gorm:"foreignKey:SessionID" json:"stages,omitempty"`
}

func (SleepSession) TableName() string {
	return "sleep_sessions"
}

// Bedtime returns the session start as local time-of-day hours in [0,24).
func (s *SleepSession) Bedtime() float64 {
	return timeOfDayHours(s.StartedAt, s.LocalTimezone)
}

// WakeTime returns the session end as local time-of-day hours, or -1 for an
// unfinished session.
func (s *SleepSession) WakeTime() float64 {
	if s.EndedAt == nil {
		return -1
	}
	return timeOfDayHours(*s.EndedAt, s.LocalTimezone)
}

// Midpoint returns the sleep midpoint as local time-of-day hours, or -1 for
// an unfinished session.
func (s *SleepSession) Midpoint() float64 {
	if s.EndedAt == nil {
		return -1
	}
	mid := s.StartedAt.Add(s.EndedAt.Sub(s.StartedAt) / 2)
	return timeOfDayHours(mid, s.LocalTimezone)
}

// IsWeekend reports whether the session started on Saturday or Sunday in its
// local timezone.
func (s *SleepSession) IsWeekend() bool {
	loc := localOrUTC(s.LocalTimezone)
	wd := s.StartedAt.In(loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func localOrUTC(tz string) *time.Location {
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			return l
		}
	}
	return time.UTC
}

func timeOfDayHours(t time.Time, tz string) float64 {
	local := t.In(localOrUTC(tz))
	return float64(local.Hour()) + float64(local.Minute())/60.0 + float64(local.Second())/3600.0
}

// SleepAnalysis is the aggregate result for one session. Percentages of the
// four stages sum to 1 for any non-empty stage list.
// @Description Aggregate sleep metrics for a finalized session.
type SleepAnalysis struct {
	DurationSeconds float64      `json:"duration_seconds" example:"28800"`
	Efficiency      float64      `json:"efficiency" example:"0.92"`
	DeepSleepPct    float64      `json:"deep_sleep_pct" example:"0.18"`
	RemSleepPct     float64      `json:"rem_sleep_pct" example:"0.22"`
	LightSleepPct   float64      `json:"light_sleep_pct" example:"0.52"`
	AwakePct        float64      `json:"awake_pct" example:"0.08"`
	SleepScore      float64      `json:"sleep_score" example:"0.81"`
	Stages          []SleepStage `json:"stages,omitempty"`
	Insights        []string     `json:"insights,omitempty"`
}

// StartSessionRequest is the request body for starting a tracking session.
// @Description Request payload for starting sleep tracking.
type StartSessionRequest struct {
	// Tracking start time; defaults to now when omitted
	StartedAt *time.Time `json:"started_at,omitempty" example:"2024-01-15T23:00:00Z"`
	// Optional IANA timezone for local time interpretation
	LocalTimezone *string `json:"local_timezone,omitempty" validate:"omitempty,timezone" example:"Europe/Prague"`
}

// EndSessionRequest is the request body for finalizing a session.
// @Description Request payload for ending sleep tracking.
type EndSessionRequest struct {
	// Tracking end time; defaults to now when omitted
	EndedAt *time.Time `json:"ended_at,omitempty" example:"2024-01-16T07:00:00Z"`
}

// SessionResponse is the response body for session endpoints.
// @Description Sleep session record with analysis summary once completed.
type SessionResponse struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Status        SessionStatus  `json:"status"`
	StartedAt     time.Time      `json:"started_at"`
	EndedAt       *time.Time     `json:"ended_at,omitempty"`
	LocalTimezone string         `json:"local_timezone"`
	CreatedAt     time.Time      `json:"created_at"`
	Analysis      *SleepAnalysis `json:"analysis,omitempty"`
}

func (s *SleepSession) ToResponse() SessionResponse {
	resp := SessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		Status:        s.Status,
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
		LocalTimezone: s.LocalTimezone,
		CreatedAt:     s.CreatedAt,
	}
	if s.Status == SessionCompleted {
		resp.Analysis = &SleepAnalysis{
			DurationSeconds: s.DurationSeconds,
			Efficiency:      s.Efficiency,
			DeepSleepPct:    s.DeepSleepPct,
			RemSleepPct:     s.RemSleepPct,
			LightSleepPct:   s.LightSleepPct,
			AwakePct:        s.AwakePct,
			SleepScore:      s.SleepScore,
			Stages:          s.Stages,
		}
	}
	return resp
}

// SessionListResponse is the response body for listing sessions.
// @Description Paginated list of sleep sessions.
type SessionListResponse struct {
	Data       []SessionResponse  `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// SessionFilter contains filter parameters for listing sessions
type SessionFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}

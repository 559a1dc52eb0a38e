package domain

// RecommendationType identifies the rule family a recommendation came from.
// @Description Recommendation rule family.
type RecommendationType string

const (
	RecommendationDuration    RecommendationType = "duration"
	RecommendationEfficiency  RecommendationType = "efficiency"
	RecommendationDeepSleep   RecommendationType = "deep_sleep"
	RecommendationRemSleep    RecommendationType = "rem_sleep"
	RecommendationEnvironment RecommendationType = "environment"
	RecommendationSchedule    RecommendationType = "schedule"
)

// RecommendationCategory groups recommendations for presentation.
// @Description Presentation category for a recommendation.
type RecommendationCategory string

const (
	CategoryHabits      RecommendationCategory = "habits"
	CategoryBedroom     RecommendationCategory = "bedroom"
	CategoryConsistency RecommendationCategory = "consistency"
)

// Recommendation is one actionable suggestion produced by the rule engine.
// Fully deterministic for a given analysis input.
// @Description Actionable sleep recommendation.
type Recommendation struct {
	Type        RecommendationType     `json:"type" example:"deep_sleep"`
	Title       string                 `json:"title" example:"Increase deep sleep"`
	Description string                 `json:"description"`
	// Higher priority sorts first
	Priority int `json:"priority" example:"4"`
	// Estimated improvement to the sleep score, [0,1]
	EstimatedImpact float64                `json:"estimated_impact" example:"0.15"`
	Category        RecommendationCategory `json:"category" example:"habits"`
}

// RecommendationsResponse is the response body for the recommendations endpoint.
// @Description Ranked recommendations for the latest finalized session.
type RecommendationsResponse struct {
	SessionID       string           `json:"session_id"`
	Analysis        SleepAnalysis    `json:"analysis"`
	Risk            DisruptionRisk   `json:"risk"`
	Recommendations []Recommendation `json:"recommendations"`
}

package domain

// NarrativeOutput contains the structured narrative from the LLM. It never
// feeds back into the deterministic analysis results.
// @Description LLM-generated narrative over the computed sleep analysis.
type NarrativeOutput struct {
	// Summary of the user's sleep and circadian state (2-3 sentences)
	Summary string `json:"summary"`
	// Observations about patterns (3-6 items)
	Observations []string `json:"observations"`
	// Behavioral guidance (3-5 items)
	Guidance []string `json:"guidance"`
}

// NarrativeContext is the context object sent to the LLM.
// @Description Computed analysis data used as LLM context.
type NarrativeContext struct {
	Circadian     CircadianRhythmAnalysis `json:"circadian"`
	LatestSession *SessionResponse        `json:"latest_session,omitempty"`
}

// InsightsResponse is the response for the insights endpoint.
// @Description Narrative insights plus the deterministic analysis they describe.
type InsightsResponse struct {
	Circadian CircadianRhythmAnalysis `json:"circadian"`
	Narrative NarrativeOutput         `json:"narrative"`
	// Trace ID for feedback (only present when the analytics sink is enabled)
	TraceID string `json:"trace_id,omitempty"`
}

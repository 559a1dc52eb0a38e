package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/api/validation"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/internal/service"
	"github.com/somnolabs/sleep-intelligence/pkg/problem"
)

// SessionHandler handles the session tracking endpoints.
type SessionHandler struct {
	service service.TrackingService
}

func NewSessionHandler(service service.TrackingService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Start handles POST /v1/users/{userId}/sessions
// @Summary Start sleep tracking
// @Description Open a tracking session for the user. Only one session may be tracking at a time.
// @Tags sessions
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.StartSessionRequest true "Tracking start parameters"
// @Success 201 {object} domain.SessionResponse "Tracking session opened"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "A session is already tracking"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sessions [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	session, err := h.service.Start(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			problem.Conflict("A tracking session is already active").Write(w)
			return
		}
		problem.InternalError("Failed to start tracking").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session.ToResponse())
}

// IngestSamples handles POST /v1/users/{userId}/sessions/{sessionId}/samples
// @Summary Ingest sensor samples
// @Description Append a batch of sensor samples to an active tracking session.
// @Tags sessions
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param request body domain.IngestSamplesRequest true "Sample batch"
// @Success 202 {object} map[string]int "Number of samples accepted"
// @Failure 400 {object} problem.Problem "Invalid samples (NaN, Inf or impossible values)"
// @Failure 404 {object} problem.Problem "Session not found"
// @Failure 409 {object} problem.Problem "Session is not tracking"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sessions/{sessionId}/samples [post]
func (h *SessionHandler) IngestSamples(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := parseSessionPath(w, r)
	if !ok {
		return
	}

	var req domain.IngestSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	accepted, err := h.service.IngestSamples(r.Context(), userID, sessionID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Session not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrNoActiveSession) {
			problem.Conflict("Session is not tracking").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Batch contains invalid sample values").Write(w)
			return
		}
		problem.InternalError("Failed to ingest samples").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]int{"accepted": accepted})
}

// End handles POST /v1/users/{userId}/sessions/{sessionId}/end
// @Summary End sleep tracking
// @Description Finalize the session: stage the recorded epochs and persist the sleep analysis.
// @Tags sessions
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param request body domain.EndSessionRequest true "Tracking end parameters"
// @Success 200 {object} domain.SessionResponse "Completed session with analysis"
// @Failure 400 {object} problem.Problem "End time not after start time"
// @Failure 404 {object} problem.Problem "Session not found"
// @Failure 409 {object} problem.Problem "Session is not tracking"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sessions/{sessionId}/end [post]
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := parseSessionPath(w, r)
	if !ok {
		return
	}

	var req domain.EndSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	session, err := h.service.End(r.Context(), userID, sessionID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Session not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrNoActiveSession) {
			problem.Conflict("Session is not tracking").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("End time must be after start time").Write(w)
			return
		}
		problem.InternalError("Failed to end tracking").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session.ToResponse())
}

// Get handles GET /v1/users/{userId}/sessions/{sessionId}
// @Summary Get a session
// @Description Fetch one session with its analysis and stage sequence once completed.
// @Tags sessions
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param sessionId path string true "Session UUID" format(uuid)
// @Success 200 {object} domain.SessionResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "Session not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sessions/{sessionId} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := parseSessionPath(w, r)
	if !ok {
		return
	}

	session, err := h.service.Get(r.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Session not found").Write(w)
			return
		}
		problem.InternalError("Failed to get session").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session.ToResponse())
}

// List handles GET /v1/users/{userId}/sessions
// @Summary List sessions
// @Description Fetch paginated session history, newest first. Filter by start time range.
// @Tags sessions
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param from query string false "Start of range (RFC3339)" format(date-time)
// @Param to query string false "End of range (RFC3339)" format(date-time)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.SessionListResponse "Sessions with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sessions [get]
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list sessions").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseSessionPath(w http.ResponseWriter, r *http.Request) (userID, sessionID uuid.UUID, ok bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err = uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		problem.BadRequest("Invalid session ID format").Write(w)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, sessionID, true
}

func parseListFilter(r *http.Request) (domain.SessionFilter, []problem.FieldError) {
	var filter domain.SessionFilter
	var fieldErrors []problem.FieldError

	// Parse 'from' parameter
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	// Parse 'to' parameter
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "to",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.To = &to
		}
	}

	// Parse 'limit' parameter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	// Parse 'cursor' parameter
	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}

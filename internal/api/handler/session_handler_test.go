package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

// MockTrackingService is a mock implementation of TrackingService
type MockTrackingService struct {
	startFunc  func(ctx context.Context, userID uuid.UUID, req *domain.StartSessionRequest) (*domain.SleepSession, error)
	ingestFunc func(ctx context.Context, userID, sessionID uuid.UUID, req *domain.IngestSamplesRequest) (int, error)
	endFunc    func(ctx context.Context, userID, sessionID uuid.UUID, req *domain.EndSessionRequest) (*domain.SleepSession, error)
	getFunc    func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SleepSession, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) (*domain.SessionListResponse, error)
}

func (m *MockTrackingService) Start(ctx context.Context, userID uuid.UUID, req *domain.StartSessionRequest) (*domain.SleepSession, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, userID, req)
	}
	return &domain.SleepSession{
		ID:            uuid.New(),
		UserID:        userID,
		Status:        domain.SessionTracking,
		StartedAt:     time.Now().UTC(),
		LocalTimezone: "UTC",
	}, nil
}

func (m *MockTrackingService) IngestSamples(ctx context.Context, userID, sessionID uuid.UUID, req *domain.IngestSamplesRequest) (int, error) {
	if m.ingestFunc != nil {
		return m.ingestFunc(ctx, userID, sessionID, req)
	}
	return len(req.Samples), nil
}

func (m *MockTrackingService) End(ctx context.Context, userID, sessionID uuid.UUID, req *domain.EndSessionRequest) (*domain.SleepSession, error) {
	if m.endFunc != nil {
		return m.endFunc(ctx, userID, sessionID, req)
	}
	now := time.Now().UTC()
	return &domain.SleepSession{
		ID:            sessionID,
		UserID:        userID,
		Status:        domain.SessionCompleted,
		StartedAt:     now.Add(-8 * time.Hour),
		EndedAt:       &now,
		LocalTimezone: "UTC",
	}, nil
}

func (m *MockTrackingService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SleepSession, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, sessionID)
	}
	return &domain.SleepSession{ID: sessionID, UserID: userID, Status: domain.SessionTracking}, nil
}

func (m *MockTrackingService) List(ctx context.Context, userID uuid.UUID, filter domain.SessionFilter) (*domain.SessionListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SessionListResponse{
		Data:       []domain.SessionResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func sessionRequest(method, path, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSessionHandler_Start(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		body           string
		mockService    *MockTrackingService
		wantStatusCode int
	}{
		{
			name:           "valid start",
			userID:         userID.String(),
			body:           `{"started_at": "2024-01-15T23:00:00Z", "local_timezone": "Europe/Prague"}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "empty body defaults",
			userID:         userID.String(),
			body:           `{}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			body:           `{}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			userID:         userID.String(),
			body:           `{invalid}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid timezone",
			userID:         userID.String(),
			body:           `{"local_timezone": "Mars/Olympus"}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "user not found",
			userID: uuid.New().String(),
			body:   `{}`,
			mockService: &MockTrackingService{
				startFunc: func(ctx context.Context, uid uuid.UUID, req *domain.StartSessionRequest) (*domain.SleepSession, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:   "already tracking",
			userID: userID.String(),
			body:   `{}`,
			mockService: &MockTrackingService{
				startFunc: func(ctx context.Context, uid uuid.UUID, req *domain.StartSessionRequest) (*domain.SleepSession, error) {
					return nil, domain.ErrConflict
				},
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSessionHandler(tt.mockService)

			req := sessionRequest(http.MethodPost, "/v1/users/"+tt.userID+"/sessions", tt.body,
				map[string]string{"userId": tt.userID})
			rec := httptest.NewRecorder()

			handler.Start(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Start() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestSessionHandler_IngestSamples(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	tests := []struct {
		name           string
		sessionID      string
		body           string
		mockService    *MockTrackingService
		wantStatusCode int
	}{
		{
			name:           "valid batch",
			sessionID:      sessionID.String(),
			body:           `{"samples": [{"timestamp": "2024-01-15T23:30:00Z", "kind": "HEART_RATE", "value": 58.5}]}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusAccepted,
		},
		{
			name:           "empty batch rejected",
			sessionID:      sessionID.String(),
			body:           `{"samples": []}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "unknown kind rejected by validation",
			sessionID:      sessionID.String(),
			body:           `{"samples": [{"timestamp": "2024-01-15T23:30:00Z", "kind": "GLUCOSE", "value": 5}]}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid session ID",
			sessionID:      "not-a-uuid",
			body:           `{"samples": [{"timestamp": "2024-01-15T23:30:00Z", "kind": "HEART_RATE", "value": 58.5}]}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:      "invalid sample values",
			sessionID: sessionID.String(),
			body:      `{"samples": [{"timestamp": "2024-01-15T23:30:00Z", "kind": "HEART_RATE", "value": -10}]}`,
			mockService: &MockTrackingService{
				ingestFunc: func(ctx context.Context, uid, sid uuid.UUID, req *domain.IngestSamplesRequest) (int, error) {
					return 0, domain.ErrInvalidInput
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:      "session not tracking",
			sessionID: sessionID.String(),
			body:      `{"samples": [{"timestamp": "2024-01-15T23:30:00Z", "kind": "HEART_RATE", "value": 58.5}]}`,
			mockService: &MockTrackingService{
				ingestFunc: func(ctx context.Context, uid, sid uuid.UUID, req *domain.IngestSamplesRequest) (int, error) {
					return 0, domain.ErrNoActiveSession
				},
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSessionHandler(tt.mockService)

			req := sessionRequest(http.MethodPost,
				"/v1/users/"+userID.String()+"/sessions/"+tt.sessionID+"/samples", tt.body,
				map[string]string{"userId": userID.String(), "sessionId": tt.sessionID})
			rec := httptest.NewRecorder()

			handler.IngestSamples(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("IngestSamples() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestSessionHandler_End(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    *MockTrackingService
		wantStatusCode int
	}{
		{
			name:           "valid end",
			body:           `{"ended_at": "2024-01-16T07:00:00Z"}`,
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not tracking",
			body: `{}`,
			mockService: &MockTrackingService{
				endFunc: func(ctx context.Context, uid, sid uuid.UUID, req *domain.EndSessionRequest) (*domain.SleepSession, error) {
					return nil, domain.ErrNoActiveSession
				},
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "end before start",
			body: `{"ended_at": "2024-01-15T22:00:00Z"}`,
			mockService: &MockTrackingService{
				endFunc: func(ctx context.Context, uid, sid uuid.UUID, req *domain.EndSessionRequest) (*domain.SleepSession, error) {
					return nil, domain.ErrInvalidInput
				},
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSessionHandler(tt.mockService)

			req := sessionRequest(http.MethodPost,
				"/v1/users/"+userID.String()+"/sessions/"+sessionID.String()+"/end", tt.body,
				map[string]string{"userId": userID.String(), "sessionId": sessionID.String()})
			rec := httptest.NewRecorder()

			handler.End(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("End() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestSessionHandler_End_IncludesAnalysis(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	mockService := &MockTrackingService{
		endFunc: func(ctx context.Context, uid, sid uuid.UUID, req *domain.EndSessionRequest) (*domain.SleepSession, error) {
			now := time.Now().UTC()
			return &domain.SleepSession{
				ID:              sid,
				UserID:          uid,
				Status:          domain.SessionCompleted,
				StartedAt:       now.Add(-8 * time.Hour),
				EndedAt:         &now,
				LocalTimezone:   "UTC",
				DurationSeconds: 28800,
				Efficiency:      0.92,
				DeepSleepPct:    0.2,
				RemSleepPct:     0.22,
				LightSleepPct:   0.5,
				AwakePct:        0.08,
				SleepScore:      0.86,
			}, nil
		},
	}
	handler := NewSessionHandler(mockService)

	req := sessionRequest(http.MethodPost,
		"/v1/users/"+userID.String()+"/sessions/"+sessionID.String()+"/end", `{}`,
		map[string]string{"userId": userID.String(), "sessionId": sessionID.String()})
	rec := httptest.NewRecorder()

	handler.End(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("End() status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp domain.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Analysis == nil {
		t.Fatal("completed session response missing analysis")
	}
	if resp.Analysis.SleepScore != 0.86 {
		t.Errorf("SleepScore = %v, want 0.86", resp.Analysis.SleepScore)
	}
}

func TestSessionHandler_List(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		queryParams    string
		mockService    *MockTrackingService
		wantStatusCode int
	}{
		{
			name:           "default list",
			userID:         userID.String(),
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "with filters",
			userID:         userID.String(),
			queryParams:    "?from=2024-01-01T00:00:00Z&to=2024-01-31T23:59:59Z&limit=10",
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid from",
			userID:         userID.String(),
			queryParams:    "?from=yesterday",
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid limit",
			userID:         userID.String(),
			queryParams:    "?limit=-5",
			mockService:    &MockTrackingService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "user not found",
			userID: uuid.New().String(),
			mockService: &MockTrackingService{
				listFunc: func(ctx context.Context, uid uuid.UUID, filter domain.SessionFilter) (*domain.SessionListResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSessionHandler(tt.mockService)

			req := sessionRequest(http.MethodGet, "/v1/users/"+tt.userID+"/sessions"+tt.queryParams, "",
				map[string]string{"userId": tt.userID})
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

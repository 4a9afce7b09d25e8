package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/handler"
	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/service"
	"github.com/shub-krishan208/pale-tsg-v2/internal/token"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

func toError(v interface{}) error {
	if v == nil {
		return nil
	}
	return v.(error)
}

// --- Mock SyncService ---

type MockSyncService struct {
	ctrl     *gomock.Controller
	recorder *MockSyncServiceRecorder
}

type MockSyncServiceRecorder struct {
	mock *MockSyncService
}

func NewMockSyncService(ctrl *gomock.Controller) *MockSyncService {
	m := &MockSyncService{ctrl: ctrl}
	m.recorder = &MockSyncServiceRecorder{mock: m}
	return m
}

func (m *MockSyncService) EXPECT() *MockSyncServiceRecorder {
	return m.recorder
}

func (m *MockSyncService) IngestBatch(ctx context.Context, events []json.RawMessage) (*wire.SyncResponse, error) {
	ret := m.ctrl.Call(m, "IngestBatch", ctx, events)
	ret0, _ := ret[0].(*wire.SyncResponse)
	return ret0, toError(ret[1])
}
func (mr *MockSyncServiceRecorder) IngestBatch(ctx, events any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "IngestBatch", ctx, events)
}

// --- Mock IssueService ---

type MockIssueService struct {
	ctrl     *gomock.Controller
	recorder *MockIssueServiceRecorder
}

type MockIssueServiceRecorder struct {
	mock *MockIssueService
}

func NewMockIssueService(ctrl *gomock.Controller) *MockIssueService {
	m := &MockIssueService{ctrl: ctrl}
	m.recorder = &MockIssueServiceRecorder{mock: m}
	return m
}

func (m *MockIssueService) EXPECT() *MockIssueServiceRecorder {
	return m.recorder
}

func (m *MockIssueService) GenerateEntryToken(ctx context.Context, roll string, laptop *string, extra json.RawMessage) (*service.IssuedCredential, error) {
	ret := m.ctrl.Call(m, "GenerateEntryToken", ctx, roll, laptop, extra)
	ret0, _ := ret[0].(*service.IssuedCredential)
	return ret0, toError(ret[1])
}
func (mr *MockIssueServiceRecorder) GenerateEntryToken(ctx, roll, laptop, extra any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "GenerateEntryToken", ctx, roll, laptop, extra)
}

func (m *MockIssueService) GenerateEmergencyExit(ctx context.Context, roll string) (*service.IssuedCredential, error) {
	ret := m.ctrl.Call(m, "GenerateEmergencyExit", ctx, roll)
	ret0, _ := ret[0].(*service.IssuedCredential)
	return ret0, toError(ret[1])
}
func (mr *MockIssueServiceRecorder) GenerateEmergencyExit(ctx, roll any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "GenerateEmergencyExit", ctx, roll)
}

// --- Mock DashboardService ---

type MockDashboardService struct {
	ctrl     *gomock.Controller
	recorder *MockDashboardServiceRecorder
}

type MockDashboardServiceRecorder struct {
	mock *MockDashboardService
}

func NewMockDashboardService(ctrl *gomock.Controller) *MockDashboardService {
	m := &MockDashboardService{ctrl: ctrl}
	m.recorder = &MockDashboardServiceRecorder{mock: m}
	return m
}

func (m *MockDashboardService) EXPECT() *MockDashboardServiceRecorder {
	return m.recorder
}

func (m *MockDashboardService) Summary(ctx context.Context) (*service.Summary, error) {
	ret := m.ctrl.Call(m, "Summary", ctx)
	ret0, _ := ret[0].(*service.Summary)
	return ret0, toError(ret[1])
}
func (mr *MockDashboardServiceRecorder) Summary(ctx any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "Summary", ctx)
}

// --- Helpers ---

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// --- Sync Endpoint ---

func TestIngestEvents_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSyncService(ctrl)
	h := handler.NewSyncHandler(mockSvc, "gate-key", 500, zap.NewNop())

	serverTime := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	mockSvc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, events []json.RawMessage) (*wire.SyncResponse, error) {
			assert.Len(t, events, 2)
			return &wire.SyncResponse{
				AckedEventIDs: []string{"0195f9a0-0000-7000-8000-000000000001"},
				Rejected: []wire.RejectedEvent{
					{EventID: nil, Error: "Missing eventId"},
				},
				ServerTime: serverTime,
			}, nil
		},
	)

	e := echo.New()
	c, rec := postJSON(e, "/api/sync/gate/events",
		`{"events":[{"eventId":"0195f9a0-0000-7000-8000-000000000001","type":"ENTRY"},{"type":"ENTRY"}]}`)

	require.NoError(t, h.IngestEvents(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	acked, ok := body["ackedEventIds"].([]interface{})
	require.True(t, ok)
	assert.Len(t, acked, 1)
	rejected, ok := body["rejected"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rejected, 1)
	assert.Contains(t, body["serverTime"], "2025-03-20T09:00:00")
}

func TestIngestEvents_EventsMustBeAList(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object", `{"events": {"a": 1}}`},
		{"scalar", `{"events": "nope"}`},
		{"missing", `{}`},
		{"null", `{"events": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockSyncService(ctrl)
			h := handler.NewSyncHandler(mockSvc, "gate-key", 500, zap.NewNop())

			e := echo.New()
			c, rec := postJSON(e, "/api/sync/gate/events", tt.body)

			require.NoError(t, h.IngestEvents(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "Invalid payload: 'events' must be a list", body["error"])
		})
	}
}

func TestIngestEvents_TooManyEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSyncService(ctrl)
	h := handler.NewSyncHandler(mockSvc, "gate-key", 2, zap.NewNop())

	e := echo.New()
	c, rec := postJSON(e, "/api/sync/gate/events", `{"events":[{},{},{}]}`)

	require.NoError(t, h.IngestEvents(c))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Too many events in one request (max 2)", body["error"])
}

func TestIngestEvents_ServiceFailureAbortsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSyncService(ctrl)
	h := handler.NewSyncHandler(mockSvc, "gate-key", 500, zap.NewNop())

	mockSvc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	e := echo.New()
	c, rec := postJSON(e, "/api/sync/gate/events",
		`{"events":[{"eventId":"0195f9a0-0000-7000-8000-000000000001","type":"ENTRY"}]}`)

	require.NoError(t, h.IngestEvents(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "internal error", body["error"])
}

// --- Gate Key Middleware ---

func TestGateKeyMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantCode   int
		wantError  string
	}{
		{"key not configured", "", "anything", http.StatusInternalServerError, "Server misconfigured: GATE_API_KEY is not set"},
		{"missing header", "secret", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong key", "secret", "guess", http.StatusForbidden, "Forbidden"},
		{"correct key", "secret", "secret", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
			wrapped := handler.GateKeyMiddleware(tt.configured)(next)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/sync/gate/events", nil)
			if tt.header != "" {
				req.Header.Set(handler.GateAPIKeyHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, wrapped(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantError != "" {
				body := decodeBody(t, rec)
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

// --- Token Issuance ---

func TestGenerateToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIssue := NewMockIssueService(ctrl)
	h := handler.NewEntriesHandler(mockIssue, nil, "kiosk-token", zap.NewNop())

	mockIssue.EXPECT().GenerateEntryToken(gomock.Any(), "21BCS001", gomock.Any(), gomock.Any()).Return(
		&service.IssuedCredential{
			EntryID: "0195f9a0-0000-7000-8000-0000000000a1",
			Token:   "signed.jwt.token",
			TTL:     token.EntryTokenTTL,
		}, nil)

	e := echo.New()
	c, rec := postJSON(e, "/api/entries/generate",
		`{"roll":"21BCS001","laptop":"dell-xps","extra":[{"item":"charger"}]}`)

	require.NoError(t, h.GenerateToken(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "0195f9a0-0000-7000-8000-0000000000a1", body["entryId"])
	assert.Equal(t, "signed.jwt.token", body["token"])
	assert.Equal(t, "Stored in db, token generated.", body["message"])
}

func TestGenerateToken_BlankLaptopMeansNone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIssue := NewMockIssueService(ctrl)
	h := handler.NewEntriesHandler(mockIssue, nil, "kiosk-token", zap.NewNop())

	mockIssue.EXPECT().GenerateEntryToken(gomock.Any(), "21BCS001", gomock.Nil(), gomock.Any()).Return(
		&service.IssuedCredential{EntryID: "x", Token: "y", TTL: token.EntryTokenTTL}, nil)

	e := echo.New()
	c, rec := postJSON(e, "/api/entries/generate", `{"roll":"21BCS001","laptop":""}`)

	require.NoError(t, h.GenerateToken(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGenerateToken_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIssue := NewMockIssueService(ctrl)
	h := handler.NewEntriesHandler(mockIssue, nil, "kiosk-token", zap.NewNop())

	mockIssue.EXPECT().GenerateEntryToken(gomock.Any(), "", gomock.Any(), gomock.Any()).Return(
		nil, &service.ValidationError{Message: "roll is required"})

	e := echo.New()
	c, rec := postJSON(e, "/api/entries/generate", `{"roll":""}`)

	require.NoError(t, h.GenerateToken(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "roll is required", body["error"])
}

func TestGenerateEmergencyExit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIssue := NewMockIssueService(ctrl)
	h := handler.NewEntriesHandler(mockIssue, nil, "kiosk-token", zap.NewNop())

	mockIssue.EXPECT().GenerateEmergencyExit(gomock.Any(), "21BCS001").Return(
		&service.IssuedCredential{
			EntryID: "0195f9a0-0000-7000-8000-0000000000b1",
			Token:   "signed.exit.token",
			TTL:     token.EmergencyExitTTL,
		}, nil)

	e := echo.New()
	c, rec := postJSON(e, "/api/entries/generate/exit", `{"roll":"21BCS001"}`)

	require.NoError(t, h.GenerateEmergencyExit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "0195f9a0-0000-7000-8000-0000000000b1", body["entryId"])
	assert.Equal(t, "signed.exit.token", body["token"])
	assert.Equal(t, float64(300), body["expiresInSeconds"])
	assert.Equal(t, "Emergency exit token - entry QR not available", body["message"])
}

func TestGenerateEmergencyExit_NoOpenEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIssue := NewMockIssueService(ctrl)
	h := handler.NewEntriesHandler(mockIssue, nil, "kiosk-token", zap.NewNop())

	mockIssue.EXPECT().GenerateEmergencyExit(gomock.Any(), "21BCS404").Return(nil, service.ErrNoOpenEntry)

	e := echo.New()
	c, rec := postJSON(e, "/api/entries/generate/exit", `{"roll":"21BCS404"}`)

	require.NoError(t, h.GenerateEmergencyExit(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "no active entry found for this roll", body["error"])
}

// --- Dashboard Summary ---

func TestSummary_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDash := NewMockDashboardService(ctrl)
	h := handler.NewEntriesHandler(nil, mockDash, "kiosk-token", zap.NewNop())

	mockDash.EXPECT().Summary(gomock.Any()).Return(&service.Summary{
		Today:     service.TodayCounts{Entries: 12, Exits: 9, CurrentInside: 3},
		Hourly:    []service.HourBucket{},
		Daily:     []service.DayBucket{},
		Timestamp: "2025-03-14T22:45:00+05:30",
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/entries/summary?token=kiosk-token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Summary(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	today, ok := body["today"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), today["entries"])
	assert.Equal(t, float64(3), today["current_inside"])
	assert.Contains(t, rec.Body.String(), `"hourly":[]`)
	assert.Contains(t, body["timestamp"], "+05:30")
}

func TestKioskTokenMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		query      string
		header     string
		wantCode   int
	}{
		{"missing token", "kiosk-token", "", "", http.StatusUnauthorized},
		{"wrong token", "kiosk-token", "?token=guess", "", http.StatusUnauthorized},
		{"token not configured", "", "?token=anything", "", http.StatusUnauthorized},
		{"query token", "kiosk-token", "?token=kiosk-token", "", http.StatusOK},
		{"header token", "kiosk-token", "", "kiosk-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
			wrapped := handler.KioskTokenMiddleware(tt.configured)(next)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/entries/summary"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(handler.KioskTokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, wrapped(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusUnauthorized {
				body := decodeBody(t, rec)
				assert.Equal(t, "Unauthorized", body["error"])
			}
		})
	}
}

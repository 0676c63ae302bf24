package routers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts/mocks"
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"
	"carelink-service/internal/app/drivers/rbac"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const switchRequestID = "6f1c7a2e-8d4b-4a51-9a0e-3b2c1d0e9f88"

type testServer struct {
	router        *chi.Mux
	sessions      *mocks.SessionService
	notifications *mocks.NotificationUsecase
	auditLogs     *mocks.AuditLogUsecase
	switchReqs    *mocks.SwitchRequestUsecase
}

func newTestServer(t *testing.T, healthChecks map[string]controllers.HealthCheck) *testServer {
	t.Helper()
	logger := zap.NewNop()

	enforcer, err := rbac.NewEnforcer()
	require.NoError(t, err)

	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			Version:                    "v1",
			MaxRequests:                1000,
			MaxTimeRequestsPerSeconds:  1,
			RequestBodyLimitInMegabyte: 1,
			DocumentMaxUploadSizeInMB:  10,
		},
	}

	ts := &testServer{
		router:        chi.NewRouter(),
		sessions:      new(mocks.SessionService),
		notifications: new(mocks.NotificationUsecase),
		auditLogs:     new(mocks.AuditLogUsecase),
		switchReqs:    new(mocks.SwitchRequestUsecase),
	}

	ts.sessions.On("GetSessionFromToken", mock.Anything, "patient-token").
		Return(&models.Session{SessionID: "s-1", ProfileID: "patient-1", Role: constvars.RolePatient}, nil)
	ts.sessions.On("GetSessionFromToken", mock.Anything, "admin-token").
		Return(&models.Session{SessionID: "s-2", ProfileID: "admin-1", Role: constvars.RoleAdmin}, nil)

	m := middlewares.NewMiddlewares(logger, ts.sessions, enforcer, internalConfig)
	SetupRoutes(ts.router, internalConfig, m, &Controllers{
		Auth:          controllers.NewAuthController(logger, nil),
		Profile:       controllers.NewProfileController(logger, nil),
		Agency:        controllers.NewAgencyController(logger, nil),
		SwitchRequest: controllers.NewSwitchRequestController(logger, ts.switchReqs),
		Document:      controllers.NewDocumentController(logger, nil),
		ESignature:    controllers.NewESignatureController(logger, nil),
		Conversation:  controllers.NewConversationController(logger, nil, nil, internalConfig),
		Notification:  controllers.NewNotificationController(logger, ts.notifications),
		AuditLog:      controllers.NewAuditLogController(logger, ts.auditLogs),
		Health:        controllers.NewHealthController(logger, healthChecks),
	})
	return ts
}

func (ts *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	ts := newTestServer(t, map[string]controllers.HealthCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return nil },
	})
	rec := ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(constvars.HeaderXRequestID))

	ts = newTestServer(t, map[string]controllers.HealthCheck{
		"postgres": func(ctx context.Context) error { return errors.New("connection refused") },
	})
	rec = ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"down"`)
}

func TestRouter_Metrics(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.do(http.MethodGet, "/healthz", "", "")

	rec := ts.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/notifications"},
		{http.MethodGet, "/api/v1/switch-requests"},
		{http.MethodGet, "/api/v1/conversations/" + switchRequestID + "/ws"},
	} {
		rec := ts.do(route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

func TestRouter_ListNotifications(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.notifications.On("FindAll", mock.Anything, mock.AnythingOfType("*models.Session"),
		mock.MatchedBy(func(r *requests.FindAllNotifications) bool {
			return r.UnreadOnly && r.Page == 2 && r.PageSize == 5
		})).
		Return([]models.Notification{{ID: "n-1", RecipientID: "patient-1", Title: "hi"}}, 6, nil).Once()

	rec := ts.do(http.MethodGet, "/api/v1/notifications?unread=true&page=2&page_size=5", "patient-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body responses.ResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 6, body.Pagination.Total)
	assert.NotEmpty(t, body.Pagination.PrevURL)
	assert.Empty(t, body.Pagination.NextURL)
	ts.notifications.AssertExpectations(t)
}

func TestRouter_AuditExportIsAdminOnly(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/api/v1/admin/audit-logs/export", "patient-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ts.auditLogs.On("Export", mock.Anything, mock.AnythingOfType("*models.Session"),
		mock.MatchedBy(func(r *requests.FindAllAuditLogs) bool { return r.EntityType == "agency" })).
		Return([]byte("xlsx-bytes"), "audit-logs-20261015-120000.xlsx", nil).Once()

	rec = ts.do(http.MethodGet, "/api/v1/admin/audit-logs/export?entity_type=agency", "admin-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constvars.MIMEApplicationXLSX, rec.Header().Get(constvars.HeaderContentType))
	assert.Contains(t, rec.Header().Get(constvars.HeaderContentDisposition), "audit-logs-20261015-120000.xlsx")
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}

func TestRouter_UpdateSwitchRequestStatus(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("invalid id", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/v1/switch-requests/not-a-uuid/status", "patient-token", `{"status":"cancelled"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/v1/switch-requests/"+switchRequestID+"/status", "patient-token", `{"status":"approved"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/v1/switch-requests/"+switchRequestID+"/status", "patient-token", `{"status":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("usecase conflict surfaces", func(t *testing.T) {
		ts.switchReqs.On("UpdateStatus", mock.Anything, mock.Anything, switchRequestID, mock.Anything).
			Return(nil, exceptions.ErrSwitchRequestStatusConflict(nil, switchRequestID, constvars.SwitchRequestStatusSubmitted)).Once()

		rec := ts.do(http.MethodPut, "/api/v1/switch-requests/"+switchRequestID+"/status", "patient-token", `{"status":"cancelled"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		ts.switchReqs.On("UpdateStatus", mock.Anything, mock.Anything, switchRequestID,
			mock.MatchedBy(func(r *requests.UpdateSwitchRequestStatus) bool { return r.Status == constvars.SwitchRequestStatusCancelled })).
			Return(&responses.SwitchRequestDetail{
				SwitchRequest:      &models.SwitchRequest{ID: switchRequestID, Status: constvars.SwitchRequestStatusCancelled},
				AllowedTransitions: []string{},
			}, nil).Once()

		rec := ts.do(http.MethodPut, "/api/v1/switch-requests/"+switchRequestID+"/status", "patient-token", `{"status":"cancelled"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), constvars.UpdateSwitchRequestStatusSuccess)
	})
}

package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell-server/internal/dto"
	"github.com/inkwell/inkwell-server/internal/metrics"
	"github.com/inkwell/inkwell-server/internal/ratelimit"
	"github.com/inkwell/inkwell-server/internal/service"
	"github.com/inkwell/inkwell-server/internal/store/sqlstore"
)

type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWith(t, Options{})
}

func setupTestServerWith(t *testing.T, opts Options) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlstore.Open(sqlstore.Options{
		Driver: sqlstore.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "api.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	services := &Services{
		User: service.NewUserService(st, logger),
		Post: service.NewPostService(st, logger),
		Tag:  service.NewTagService(st, logger),
	}

	s := NewServer(st, services, opts, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.API()),
	}
}

// apiError mirrors the error body returned by every endpoint.
type apiError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return out
}

func (ts *testServer) createUser(t *testing.T, name, email string) dto.User {
	t.Helper()
	resp := ts.api.Post("/api/v1/users", map[string]any{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[dto.User](t, resp)
}

func (ts *testServer) createPost(t *testing.T, userID int64, title, content string) dto.Post {
	t.Helper()
	resp := ts.api.Post("/api/v1/posts", map[string]any{"title": title, "content": content, "userId": userID})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[dto.Post](t, resp)
}

func (ts *testServer) createTag(t *testing.T, name string) dto.Tag {
	t.Helper()
	resp := ts.api.Post("/api/v1/tags", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[dto.Tag](t, resp)
}

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")

	require.Equal(t, http.StatusOK, resp.Code)
	health := decode[HealthResponse](t, resp)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["database"].Status)
}

func TestHealthCheck_DatabaseClosed(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.store.Close())

	resp := ts.api.Get("/health")

	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	health := decode[HealthResponse](t, resp)
	assert.Equal(t, "unhealthy", health.Status)
	assert.NotEmpty(t, health.Components["database"].Message)
}

func TestStorageFailure_ReturnsGenericInternalError(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.store.Close())

	resp := ts.api.Post("/api/v1/tags", map[string]any{"name": "x"})

	require.Equal(t, http.StatusInternalServerError, resp.Code, resp.Body.String())
	body := decode[apiError](t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "unexpected error occurred", body.Message)
	assert.NotContains(t, strings.ToLower(resp.Body.String()), "sql")
	assert.NotContains(t, resp.Body.String(), "closed")
}

func TestUnknownRoute(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/comments")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decode[apiError](t, resp).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServerWith(t, Options{Metrics: metrics.New()})
	ts.createUser(t, "John Doe", "john.doe@example.com")

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `route="/api/v1/users"`), body)
	assert.True(t, strings.Contains(body, `status="201"`), body)
}

func TestMetricsEndpoint_DisabledByDefault(t *testing.T) {
	ts := setupTestServer(t)

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(60, 2, time.Minute)
	t.Cleanup(limiter.Stop)
	ts := setupTestServerWith(t, Options{RateLimiter: limiter})

	assert.Equal(t, http.StatusOK, ts.api.Get("/api/v1/tags").Code)
	assert.Equal(t, http.StatusOK, ts.api.Get("/api/v1/tags").Code)

	resp := ts.api.Get("/api/v1/tags")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "RATE_LIMITED", decode[apiError](t, resp).Code)
	assert.Equal(t, "60", resp.Header().Get("Retry-After"))

	// A different client has its own budget.
	other := ts.api.Get("/api/v1/tags", "X-Real-IP: 203.0.113.9")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestCORS(t *testing.T) {
	ts := setupTestServerWith(t, Options{CORSOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeaderAccepted(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users", "X-Request-Id: abc-123")

	assert.Equal(t, http.StatusOK, resp.Code)
}

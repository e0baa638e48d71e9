package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shareit/internal/clock"
	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

// upstreamCall captures what the gateway forwarded.
type upstreamCall struct {
	Method string
	Path   string
	Query  string
	User   string
	Body   string
}

func newTestGateway(t *testing.T, limiter domain.RateLimiter, rateCfg config.RateLimitConfig) (http.Handler, *[]upstreamCall) {
	t.Helper()

	var calls []upstreamCall
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, upstreamCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			User:   r.Header.Get("X-Sharer-User-Id"),
			Body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"echo":true}`))
	}))
	t.Cleanup(upstream.Close)

	logger := zerolog.Nop()
	cfg := config.GatewayConfig{
		Port:           0,
		ServerURL:      upstream.URL,
		TimeoutSeconds: 5,
		RateLimit:      rateCfg,
	}
	gw := NewGateway(cfg, clock.NewFrozen(testTime), limiter, &logger)
	return gw.Handler(), &calls
}

func doRequest(t *testing.T, handler http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Sharer-User-Id", userID)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestGateway_ForwardsValidRequests(t *testing.T) {
	handler, calls := newTestGateway(t, nil, config.RateLimitConfig{})

	rec := doRequest(t, handler, http.MethodPost, "/users", "", map[string]string{
		"name": "Alice", "email": "alice@example.com",
	})

	// Upstream status and body are mirrored back untouched.
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"echo":true}`, rec.Body.String())

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/users", call.Path)
	assert.Contains(t, call.Body, "alice@example.com")
}

func TestGateway_PreservesQueryAndHeader(t *testing.T) {
	handler, calls := newTestGateway(t, nil, config.RateLimitConfig{})

	rec := doRequest(t, handler, http.MethodGet, "/bookings?state=FUTURE&from=0&size=5", "7", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "state=FUTURE&from=0&size=5", call.Query)
	assert.Equal(t, "7", call.User)
}

func TestGateway_UserValidation(t *testing.T) {
	handler, calls := newTestGateway(t, nil, config.RateLimitConfig{})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"blank name", map[string]string{"name": "  ", "email": "a@example.com"}},
		{"missing email", map[string]string{"name": "Alice"}},
		{"malformed email", map[string]string{"name": "Alice", "email": "not-an-email"}},
	}
	for _, tt := range tests {
		rec := doRequest(t, handler, http.MethodPost, "/users", "", tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
	}
	assert.Empty(t, *calls)

	// A patch may omit the email but not send a broken one.
	rec := doRequest(t, handler, http.MethodPatch, "/users/1", "", map[string]string{"name": "Alicia"})
	assert.Equal(t, http.StatusTeapot, rec.Code)
	rec = doRequest(t, handler, http.MethodPatch, "/users/1", "", map[string]string{"email": "broken"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGateway_ItemValidation(t *testing.T) {
	handler, calls := newTestGateway(t, nil, config.RateLimitConfig{})

	valid := map[string]any{"name": "drill", "description": "a drill", "available": true}

	rec := doRequest(t, handler, http.MethodPost, "/items", "", valid)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing identity header")

	rec = doRequest(t, handler, http.MethodPost, "/items", "1", map[string]any{"description": "d", "available": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "blank name")

	rec = doRequest(t, handler, http.MethodPost, "/items", "1", map[string]any{"name": "drill", "description": "d"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "available missing")

	assert.Empty(t, *calls)

	rec = doRequest(t, handler, http.MethodPost, "/items", "1", valid)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Len(t, *calls, 1)
}

func TestGateway_BookingValidation(t *testing.T) {
	handler, calls := newTestGateway(t, nil, config.RateLimitConfig{})

	future := testTime.Add(time.Hour)
	later := testTime.Add(2 * time.Hour)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"item id missing", map[string]any{"start": future, "end": later}},
		{"start missing", map[string]any{"itemId": 1, "end": later}},
		{"inverted range", map[string]any{"itemId": 1, "start": later, "end": future}},
		{"start in the past", map[string]any{"itemId": 1, "start": testTime.Add(-time.Hour), "end": later}},
	}
	for _, tt := range tests {
		rec := doRequest(t, handler, http.MethodPost, "/bookings", "1", tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
	}
	assert.Empty(t, *calls)

	rec := doRequest(t, handler, http.MethodPost, "/bookings", "1", map[string]any{"itemId": 1, "start": future, "end": later})
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGateway_BookingQueryValidation(t *testing.T) {
	handler, _ := newTestGateway(t, nil, config.RateLimitConfig{})

	rec := doRequest(t, handler, http.MethodGet, "/bookings?state=SOMETIMES", "1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown state: SOMETIMES")

	rec = doRequest(t, handler, http.MethodGet, "/bookings?from=-1", "1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/bookings?size=0", "1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPatch, "/bookings/5?approved=maybe", "1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPatch, "/bookings/5?approved=true", "1", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGateway_CommentAndRequestValidation(t *testing.T) {
	handler, _ := newTestGateway(t, nil, config.RateLimitConfig{})

	rec := doRequest(t, handler, http.MethodPost, "/items/5/comment", "1", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/items/5/comment", "1", map[string]string{"text": "solid"})
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/requests", "1", map[string]string{"description": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/requests", "1", map[string]string{"description": "need a drill"})
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGateway_RateLimit(t *testing.T) {
	limiter := repository.NewMemoryLimiter()
	handler, _ := newTestGateway(t, limiter, config.RateLimitConfig{
		Enabled: true, Requests: 2, WindowSeconds: 60,
	})

	for i := 0; i < 2; i++ {
		rec := doRequest(t, handler, http.MethodGet, "/items", "7", nil)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	rec := doRequest(t, handler, http.MethodGet, "/items", "7", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Another user has their own budget.
	rec = doRequest(t, handler, http.MethodGet, "/items", "8", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGateway_UpstreamDown(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.GatewayConfig{
		ServerURL:      "http://127.0.0.1:1",
		TimeoutSeconds: 1,
	}
	gw := NewGateway(cfg, clock.NewFrozen(testTime), nil, &logger)

	rec := doRequest(t, gw.Handler(), http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

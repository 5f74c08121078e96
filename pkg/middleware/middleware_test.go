package middleware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/internal/models/db_models"
	"mindcare/internal/services"
	"mindcare/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticAuth struct {
	token string
	p     services.Principal
}

func (a staticAuth) Authenticate(_ context.Context, token string) (services.Principal, error) {
	if token != a.token {
		return services.Principal{}, utils.ErrUnauthenticated
	}
	return a.p, nil
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	want := services.Principal{ID: uuid.New(), Role: db_models.RoleUser}
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(staticAuth{token: "good", p: want}), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		assert.Equal(t, want, p)
		assert.Equal(t, want.ID.String(), c.GetString("user_id"))
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"good token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.status, serve(r, req).Code)
		})
	}
}

type failingAuth struct{ err error }

func (a failingAuth) Authenticate(context.Context, string) (services.Principal, error) {
	return services.Principal{}, a.err
}

func TestJWTAuthMiddleware_InternalErrorIsNotUnauthorized(t *testing.T) {
	r := gin.New()
	reached := false
	auth := failingAuth{err: fmt.Errorf("%w: connection refused", utils.ErrDatabaseError)}
	r.GET("/me", JWTAuthMiddleware(auth), func(c *gin.Context) { reached = true })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := serve(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.False(t, reached)
}

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, incoming)
	w := serve(r, req)
	assert.Equal(t, incoming, w.Header().Get(TraceIDHeader))
	assert.Equal(t, incoming, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "<script>")
	w = serve(r, req)
	_, err := uuid.Parse(w.Header().Get(TraceIDHeader))
	assert.NoError(t, err)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	t.Cleanup(limiter.Stop)

	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusOK, from("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, from("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1:3333"))
	assert.Equal(t, http.StatusOK, from("10.0.0.2:1111"))

	// Stop is idempotent.
	limiter.Stop()
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) RecordRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func (f *fakeRecorder) RecordAuthEvent(string, string) {}
func (f *fakeRecorder) RecordSentiment(string) {}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	rec := &fakeRecorder{}

	r := gin.New()
	r.Use(RequestLogger(logger, rec))
	r.GET("/mood/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/mood/123", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, rec.requests, 2)
	assert.Equal(t, recordedRequest{"GET", "/mood/:id", http.StatusNotFound}, rec.requests[0])
	assert.Equal(t, "unmatched", rec.requests[1].route)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"WARN"`)
	assert.Contains(t, lines[0], `"path":"/mood/123"`)
}

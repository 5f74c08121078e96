package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI imitates the auth surface of the server: /auth/me accepts only the
// current access token and /auth/refresh rotates the pair.
type fakeAPI struct {
	mu      sync.Mutex
	access  string
	refresh string

	refreshCalls atomic.Int32
	refreshFails bool
	// refreshStatus, when set, is returned by /auth/refresh instead of a pair.
	refreshStatus int
	meAlways401  bool
	refreshDelay time.Duration

	// gate holds the first wave of stale requests until all have arrived.
	gateSize int
	arrived  int
	gate     chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{access: "access-0", refresh: "refresh-0", gate: make(chan struct{})}
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":  status < 300,
		"code":     status,
		"message":  message,
		"trace_id": "trace-1",
		"data":     data,
	})
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		valid := r.Header.Get("Authorization") == "Bearer "+f.access
		var wait chan struct{}
		if !valid && f.gateSize > 0 && f.arrived < f.gateSize {
			f.arrived++
			if f.arrived == f.gateSize {
				close(f.gate)
			}
			wait = f.gate
		}
		f.mu.Unlock()

		if wait != nil {
			select {
			case <-wait:
			case <-time.After(5 * time.Second):
			}
		}
		if !valid || f.meAlways401 {
			writeEnvelope(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{"id": uuid.NewString(), "username": "river"})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		n := f.refreshCalls.Add(1)
		if f.refreshDelay > 0 {
			time.Sleep(f.refreshDelay)
		}
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.refreshStatus != 0 {
			writeEnvelope(w, f.refreshStatus, http.StatusText(f.refreshStatus), nil)
			return
		}
		if f.refreshFails || body.RefreshToken != f.refresh {
			writeEnvelope(w, http.StatusUnauthorized, "Session expired, please log in again", nil)
			return
		}
		f.access = fmt.Sprintf("access-%d", n)
		f.refresh = fmt.Sprintf("refresh-%d", n)
		writeEnvelope(w, http.StatusOK, "Session renewed", map[string]any{
			"access_token":      f.access,
			"access_expires_at": time.Now().Add(time.Minute),
			"refresh_token":     f.refresh,
		})
	})
	mux.HandleFunc("/mood/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "mood entry not found", nil)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, "Login successful", map[string]any{
			"access_token":  f.access,
			"refresh_token": f.refresh,
			"user":          map[string]any{"id": uuid.NewString(), "username": "river"},
		})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "Logged out", nil)
	})
	return mux
}

func newGatewayWithStaleSession(t *testing.T, api *fakeAPI) *Gateway {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	g := New(srv.URL, WithTimeout(10*time.Second))
	g.Session().Set(Tokens{AccessToken: "stale", RefreshToken: "refresh-0"})
	return g
}

func callMeConcurrently(g *Gateway, n int) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = g.Me(context.Background())
		}(i)
	}
	wg.Wait()
	return errs
}

func TestGateway_ConcurrentRenewalIsSingleFlight(t *testing.T) {
	const n = 8
	api := newFakeAPI()
	api.gateSize = n
	api.refreshDelay = 50 * time.Millisecond
	g := newGatewayWithStaleSession(t, api)

	for i, err := range callMeConcurrently(g, n) {
		assert.NoError(t, err, "call %d", i)
	}
	assert.Equal(t, int32(1), api.refreshCalls.Load())

	tokens, ok := g.Session().Get()
	require.True(t, ok)
	assert.Equal(t, "access-1", tokens.AccessToken)
	assert.Equal(t, "refresh-1", tokens.RefreshToken)
}

func TestGateway_RenewalFailureClearsSession(t *testing.T) {
	const n = 5
	api := newFakeAPI()
	api.gateSize = n
	api.refreshFails = true
	g := newGatewayWithStaleSession(t, api)

	for i, err := range callMeConcurrently(g, n) {
		assert.ErrorIs(t, err, ErrSessionExpired, "call %d", i)
	}
	assert.Equal(t, int32(1), api.refreshCalls.Load())

	_, ok := g.Session().Get()
	assert.False(t, ok)

	_, err := g.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGateway_RenewalServerErrorKeepsSession(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusTooManyRequests} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			api := newFakeAPI()
			api.refreshStatus = status
			g := newGatewayWithStaleSession(t, api)

			_, err := g.Me(context.Background())
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrSessionExpired)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, status, apiErr.Status)

			tokens, ok := g.Session().Get()
			require.True(t, ok)
			assert.Equal(t, "refresh-0", tokens.RefreshToken)

			// Once the server recovers the same session renews normally.
			api.mu.Lock()
			api.refreshStatus = 0
			api.mu.Unlock()
			_, err = g.Me(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int32(2), api.refreshCalls.Load())
		})
	}
}

func TestGateway_SecondUnauthorizedIsNotRetried(t *testing.T) {
	api := newFakeAPI()
	api.meAlways401 = true
	g := newGatewayWithStaleSession(t, api)

	_, err := g.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorizedAfterRenewal)
	assert.Equal(t, int32(1), api.refreshCalls.Load())
}

func TestGateway_ValidTokenSkipsRenewal(t *testing.T) {
	api := newFakeAPI()
	g := newGatewayWithStaleSession(t, api)
	g.Session().Set(Tokens{AccessToken: "access-0", RefreshToken: "refresh-0"})

	_, err := g.Me(context.Background())
	require.NoError(t, err)
	assert.Zero(t, api.refreshCalls.Load())
}

func TestGateway_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		writeEnvelope(w, http.StatusOK, "late", nil)
	}))
	t.Cleanup(srv.Close)

	g := New(srv.URL, WithTimeout(50*time.Millisecond))
	g.Session().Set(Tokens{AccessToken: "a", RefreshToken: "r"})

	_, err := g.Me(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	g = New(srv.URL)
	g.Session().Set(Tokens{AccessToken: "a", RefreshToken: "r"})
	_, err = g.Me(ctx)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGateway_ErrorTaxonomy(t *testing.T) {
	api := newFakeAPI()
	g := newGatewayWithStaleSession(t, api)
	g.Session().Set(Tokens{AccessToken: "access-0", RefreshToken: "refresh-0"})

	_, err := g.GetMood(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "trace-1", apiErr.TraceID)
}

func TestGateway_NoSession(t *testing.T) {
	g := New("http://127.0.0.1:1")
	_, err := g.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGateway_LoginAndLogout(t *testing.T) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	g := New(srv.URL)

	user, err := g.Login(context.Background(), "river@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "river", user.Username)

	tokens, ok := g.Session().Get()
	require.True(t, ok)
	assert.Equal(t, "access-0", tokens.AccessToken)

	require.NoError(t, g.Logout(context.Background()))
	_, ok = g.Session().Get()
	assert.False(t, ok)
}

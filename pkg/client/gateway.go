// Package client is a Go client for the mindcare API. The Gateway owns the
// session: it attaches the access token, renews it on a 401 and retries the
// request exactly once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout = 15 * time.Second
	refreshPath    = "/auth/refresh"
	renewKey       = "renew"
)

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	renewals   singleflight.Group
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithSession shares a session between gateways.
func WithSession(s *Session) Option {
	return func(g *Gateway) { g.session = s }
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.httpClient.Timeout = d }
}

func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    NewSession(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) Session() *Session { return g.session }

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

// Do sends an authenticated request and decodes the envelope's data into out
// (which may be nil). A 401 triggers one shared renewal and a single retry.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	payload, err := encode(body)
	if err != nil {
		return err
	}

	tokens, ok := g.session.Get()
	if !ok {
		return ErrNoSession
	}

	status, env, err := g.send(ctx, method, path, payload, tokens.AccessToken)
	if err != nil {
		return err
	}
	if status != http.StatusUnauthorized {
		return decode(status, env, out)
	}

	if err := g.renew(ctx, tokens.AccessToken); err != nil {
		return err
	}
	tokens, ok = g.session.Get()
	if !ok {
		return ErrSessionExpired
	}

	status, env, err = g.send(ctx, method, path, payload, tokens.AccessToken)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorizedAfterRenewal, env.Message)
	}
	return decode(status, env, out)
}

// doPublic sends a request without a token and never renews.
func (g *Gateway) doPublic(ctx context.Context, method, path string, body, out any) error {
	payload, err := encode(body)
	if err != nil {
		return err
	}
	status, env, err := g.send(ctx, method, path, payload, "")
	if err != nil {
		return err
	}
	return decode(status, env, out)
}

// renew coalesces concurrent renewals into one refresh call. A caller whose
// 401 was for a token that has already been replaced returns immediately
// and retries with the new token.
func (g *Gateway) renew(ctx context.Context, staleAccess string) error {
	if current, ok := g.session.Get(); ok && current.AccessToken != staleAccess {
		return nil
	}

	// Detached so one caller's cancellation does not fail everyone waiting.
	renewCtx := context.WithoutCancel(ctx)
	_, err, _ := g.renewals.Do(renewKey, func() (any, error) {
		current, ok := g.session.Get()
		if !ok {
			return nil, ErrSessionExpired
		}
		if current.AccessToken != staleAccess {
			return nil, nil
		}

		payload, err := encode(map[string]string{"refresh_token": current.RefreshToken})
		if err != nil {
			return nil, err
		}
		status, env, err := g.send(renewCtx, http.MethodPost, refreshPath, payload, "")
		if err != nil {
			return nil, err
		}

		if status == http.StatusUnauthorized {
			g.session.Clear()
			return nil, fmt.Errorf("%w: %s", ErrSessionExpired, env.Message)
		}
		// Any other failure leaves the session in place so the caller can retry.
		var pair tokenPair
		if err := decode(status, env, &pair); err != nil {
			return nil, err
		}
		g.session.Set(pair.tokens())
		return nil, nil
	})
	return err
}

func (g *Gateway) send(ctx context.Context, method, path string, payload []byte, accessToken string) (int, envelope, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return 0, envelope{}, fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, envelope{}, fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		return 0, envelope{}, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return 0, envelope{}, fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		return 0, envelope{}, fmt.Errorf("client: reading response: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			env.Message = strings.TrimSpace(string(raw))
		}
	}
	return resp.StatusCode, env, nil
}

func encode(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("client: encoding request: %w", err)
	}
	return payload, nil
}

func decode(status int, env envelope, out any) error {
	if status < 200 || status >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Status: status, Message: msg, TraceID: env.TraceID}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("client: decoding response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

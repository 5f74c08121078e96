package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/response_models"
	"mindcare/pkg/utils"
)

// testClock hands out a controllable "now".
type testClock struct{ t time.Time }

func newTestClock() *testClock {
	// A Monday morning in UTC.
	return &testClock{t: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func userPrincipal() Principal {
	return Principal{ID: uuid.New(), Role: db_models.RoleUser}
}

func adminPrincipal() Principal {
	return Principal{ID: uuid.New(), Role: db_models.RoleAdmin}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// stubClassifier returns a fixed result and counts calls.
type stubClassifier struct {
	result response_models.SentimentResult
	calls  int
}

func (s *stubClassifier) Classify(context.Context, string) response_models.SentimentResult {
	s.calls++
	return s.result
}

// fakeCompletion is a scripted CompletionClientInterface.
type fakeCompletion struct {
	reply     string
	jsonReply string
	err       error
	system    string
	history   []utils.ChatMessage
	message   string
	calls     int
}

func (f *fakeCompletion) Complete(_ context.Context, system string, history []utils.ChatMessage, message string) (string, error) {
	f.calls++
	f.system, f.history, f.message = system, history, message
	return f.reply, f.err
}

func (f *fakeCompletion) CompleteJSON(context.Context, string, string) (string, error) {
	f.calls++
	return f.jsonReply, f.err
}

func (f *fakeCompletion) Close() error { return nil }

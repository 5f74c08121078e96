package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Register creates an account and starts a session.
func (g *Gateway) Register(ctx context.Context, username, email, password string) (*User, error) {
	return g.authenticate(ctx, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*User, error) {
	return g.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (g *Gateway) authenticate(ctx context.Context, path string, body any) (*User, error) {
	var res authResult
	if err := g.doPublic(ctx, http.MethodPost, path, body, &res); err != nil {
		return nil, err
	}
	g.session.Set(res.tokens())
	return &res.User, nil
}

// Logout revokes the refresh token and clears the session, even if the
// server cannot be reached.
func (g *Gateway) Logout(ctx context.Context) error {
	tokens, ok := g.session.Get()
	g.session.Clear()
	if !ok {
		return nil
	}
	return g.doPublic(ctx, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": tokens.RefreshToken}, nil)
}

func (g *Gateway) Me(ctx context.Context) (*User, error) {
	var u User
	if err := g.Do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type DetailsUpdate struct {
	Username    *string      `json:"username,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

func (g *Gateway) UpdateDetails(ctx context.Context, update DetailsUpdate) (*User, error) {
	var u User
	if err := g.Do(ctx, http.MethodPut, "/auth/updatedetails", update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword replaces the session with the one issued for the new password.
func (g *Gateway) UpdatePassword(ctx context.Context, current, next string) error {
	var res authResult
	body := map[string]string{"current_password": current, "new_password": next}
	if err := g.Do(ctx, http.MethodPut, "/auth/updatepassword", body, &res); err != nil {
		return err
	}
	g.session.Set(res.tokens())
	return nil
}

// ListOptions are shared by the list endpoints; zero values are omitted.
type ListOptions struct {
	Page     int
	Limit    int
	Mood     string
	Emotion  string
	Tag      string
	Activity string
	From     time.Time
	To       time.Time
	UserID   uuid.UUID
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	setIf(q, "mood", o.Mood)
	setIf(q, "emotion", o.Emotion)
	setIf(q, "tag", o.Tag)
	setIf(q, "activity", o.Activity)
	setTime(q, "from", o.From)
	setTime(q, "to", o.To)
	if o.UserID != uuid.Nil {
		q.Set("user_id", o.UserID.String())
	}
	return encodeQuery(q)
}

// StatsOptions selects the analytics window.
type StatsOptions struct {
	Days   int
	Start  time.Time
	End    time.Time
	Dense  bool
	UserID uuid.UUID
}

func (o StatsOptions) query() string {
	q := url.Values{}
	if o.Days > 0 {
		q.Set("days", strconv.Itoa(o.Days))
	}
	setTime(q, "start", o.Start)
	setTime(q, "end", o.End)
	if o.Dense {
		q.Set("dense", "true")
	}
	if o.UserID != uuid.Nil {
		q.Set("user_id", o.UserID.String())
	}
	return encodeQuery(q)
}

func (g *Gateway) CreateMood(ctx context.Context, mood NewMood) (*MoodEntry, error) {
	var e MoodEntry
	if err := g.Do(ctx, http.MethodPost, "/mood", mood, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway) GetMood(ctx context.Context, id uuid.UUID) (*MoodEntry, error) {
	var e MoodEntry
	if err := g.Do(ctx, http.MethodGet, "/mood/"+id.String(), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway) ListMoods(ctx context.Context, opts ListOptions) (*Page[MoodEntry], error) {
	var p Page[MoodEntry]
	if err := g.Do(ctx, http.MethodGet, "/mood"+opts.query(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *Gateway) UpdateMood(ctx context.Context, id uuid.UUID, patch MoodPatch) (*MoodEntry, error) {
	var e MoodEntry
	if err := g.Do(ctx, http.MethodPut, "/mood/"+id.String(), patch, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway) DeleteMood(ctx context.Context, id uuid.UUID) error {
	return g.Do(ctx, http.MethodDelete, "/mood/"+id.String(), nil, nil)
}

func (g *Gateway) MoodStats(ctx context.Context, opts StatsOptions) (*MoodStats, error) {
	var s MoodStats
	if err := g.Do(ctx, http.MethodGet, "/mood/stats"+opts.query(), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *Gateway) MoodInsights(ctx context.Context) (*Insights, error) {
	var in Insights
	if err := g.Do(ctx, http.MethodGet, "/mood/insights", nil, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (g *Gateway) CreateJournal(ctx context.Context, entry NewJournal) (*JournalEntry, error) {
	var e JournalEntry
	if err := g.Do(ctx, http.MethodPost, "/journal", entry, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway) GetJournal(ctx context.Context, id uuid.UUID) (*JournalEntry, error) {
	var e JournalEntry
	if err := g.Do(ctx, http.MethodGet, "/journal/"+id.String(), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway) ListJournals(ctx context.Context, opts ListOptions) (*Page[JournalEntry], error) {
	var p Page[JournalEntry]
	if err := g.Do(ctx, http.MethodGet, "/journal"+opts.query(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *Gateway) UpdateJournal(ctx context.Context, id uuid.UUID, patch JournalPatch) (*JournalEntry, error) {
	var e JournalEntry
	if err := g.Do(ctx, http.MethodPut, "/journal/"+id.String(), patch, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway) DeleteJournal(ctx context.Context, id uuid.UUID) error {
	return g.Do(ctx, http.MethodDelete, "/journal/"+id.String(), nil, nil)
}

func (g *Gateway) JournalStats(ctx context.Context, opts StatsOptions) (*JournalStats, error) {
	var s JournalStats
	if err := g.Do(ctx, http.MethodGet, "/journal/stats"+opts.query(), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *Gateway) Chat(ctx context.Context, message string, history []ChatTurn) (string, error) {
	var res struct {
		Reply string `json:"reply"`
	}
	body := struct {
		Message string     `json:"message"`
		History []ChatTurn `json:"history,omitempty"`
	}{Message: message, History: history}
	if err := g.Do(ctx, http.MethodPost, "/chat", body, &res); err != nil {
		return "", err
	}
	return res.Reply, nil
}

func (g *Gateway) Analyze(ctx context.Context, text string) (*Sentiment, error) {
	var s Sentiment
	if err := g.Do(ctx, http.MethodPost, "/chat/analyze", map[string]string{"text": text}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func setIf(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setTime(q url.Values, key string, t time.Time) {
	if !t.IsZero() {
		q.Set(key, t.UTC().Format(time.RFC3339))
	}
}

func encodeQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

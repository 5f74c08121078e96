package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
	"mindcare/internal/repositories/repotest"
	mem "mindcare/pkg/memcache"
	"mindcare/pkg/utils"
)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	return NewAccountService(
		repotest.NewAccounts(),
		utils.NewJWTManager("test-secret", 15*time.Minute),
		mem.NewRefreshTokens(),
		time.Hour,
		nil,
	)
}

func register(t *testing.T, svc *AccountService, username, email string) string {
	t.Helper()
	resp, err := svc.Register(context.Background(), request_models.SignUpRequest{
		Username: username,
		Email:    email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp.RefreshToken
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, request_models.SignUpRequest{
		Username: "  river ",
		Email:    "River@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "river", resp.User.Username)
	assert.Equal(t, "river@example.com", resp.User.Email)
	assert.Equal(t, string(db_models.RoleUser), resp.User.Role)
	assert.Equal(t, db_models.ThemeSystem, resp.User.Preferences.Theme)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "river@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAccountService_LoginFailsIdentically(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()
	register(t, svc, "river", "river@example.com")

	_, wrongPassword := svc.Login(ctx, request_models.LoginRequest{Email: "river@example.com", Password: "nope-nope"})
	_, unknownEmail := svc.Login(ctx, request_models.LoginRequest{Email: "ghost@example.com", Password: "correct-horse"})

	assert.ErrorIs(t, wrongPassword, utils.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, utils.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAccountService_RegisterRejectsDuplicates(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()
	register(t, svc, "river", "river@example.com")

	_, err := svc.Register(ctx, request_models.SignUpRequest{Username: "other", Email: "RIVER@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, utils.ErrDuplicateIdentity)

	_, err = svc.Register(ctx, request_models.SignUpRequest{Username: "River", Email: "new@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, utils.ErrDuplicateIdentity)
}

func TestAccountService_RegisterValidation(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	cases := map[string]request_models.SignUpRequest{
		"short password":         {Username: "river", Email: "river@example.com", Password: "short"},
		"bad email":              {Username: "river", Email: "not-an-email", Password: "correct-horse"},
		"short username":         {Username: "ab", Email: "river@example.com", Password: "correct-horse"},
		"password over 72 bytes": {Username: "river", Email: "river@example.com", Password: strings.Repeat("p", 80)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, req)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestAccountService_RefreshRotates(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()
	refresh := register(t, svc, "river", "river@example.com")

	pair, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEqual(t, refresh, pair.RefreshToken)

	_, err = svc.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, utils.ErrSessionExpired)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)
}

type authEvents struct {
	mu     sync.Mutex
	events []string
}

func (r *authEvents) RecordRequest(string, string, int, time.Duration) {}
func (r *authEvents) RecordSentiment(string) {}

func (r *authEvents) RecordAuthEvent(event, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event+":"+outcome)
}

func TestAccountService_LogoutRevokes(t *testing.T) {
	recorder := &authEvents{}
	svc := NewAccountService(
		repotest.NewAccounts(),
		utils.NewJWTManager("test-secret", 15*time.Minute),
		mem.NewRefreshTokens(),
		time.Hour,
		recorder,
	)
	ctx := context.Background()
	refresh := register(t, svc, "river", "river@example.com")

	svc.Logout(ctx, refresh)
	svc.Logout(ctx, refresh)

	_, err := svc.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, utils.ErrSessionExpired)
	assert.Equal(t, []string{"register:success", "logout:success", "logout:unknown_token", "refresh:expired"}, recorder.events)
}

func TestAccountService_LoginRepeatedWrongPassword(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()
	register(t, svc, "river", "river@example.com")

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, request_models.LoginRequest{Email: "river@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials, "attempt %d", i+1)
	}
	_, err := svc.Login(ctx, request_models.LoginRequest{Email: "river@example.com", Password: "correct-horse"})
	assert.NoError(t, err)
}

func TestAccountService_Authenticate(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()
	resp, err := svc.Register(ctx, request_models.SignUpRequest{Username: "river", Email: "river@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	p, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, p.ID.String())
	assert.Equal(t, db_models.RoleUser, p.Role)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestAccountService_UpdatePasswordRevokesSessions(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()
	resp, err := svc.Register(ctx, request_models.SignUpRequest{Username: "river", Email: "river@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	p, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	_, err = svc.UpdatePassword(ctx, p, request_models.UpdatePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "battery-staple"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.UpdatePassword(ctx, p, request_models.UpdatePasswordRequest{CurrentPassword: "correct-horse", NewPassword: strings.Repeat("b", 73)})
	assert.ErrorIs(t, err, utils.ErrValidation)

	fresh, err := svc.UpdatePassword(ctx, p, request_models.UpdatePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "battery-staple"})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, utils.ErrSessionExpired)
	_, err = svc.Refresh(ctx, fresh.RefreshToken)
	assert.NoError(t, err)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "river@example.com", Password: "battery-staple"})
	assert.NoError(t, err)
}

func TestAccountService_UpdateDetails(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()
	register(t, svc, "taken", "taken@example.com")
	resp, err := svc.Register(ctx, request_models.SignUpRequest{Username: "river", Email: "river@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	p, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	_, err = svc.UpdateDetails(ctx, p, request_models.UpdateDetailsRequest{Username: strPtr("taken")})
	assert.ErrorIs(t, err, utils.ErrDuplicateIdentity)

	_, err = svc.UpdateDetails(ctx, p, request_models.UpdateDetailsRequest{
		Preferences: &db_models.Preferences{Theme: "neon"},
	})
	assert.ErrorIs(t, err, utils.ErrValidation)

	updated, err := svc.UpdateDetails(ctx, p, request_models.UpdateDetailsRequest{
		Username:    strPtr("river2"),
		Preferences: &db_models.Preferences{Theme: db_models.ThemeDark, ReminderTime: "21:30"},
	})
	require.NoError(t, err)
	assert.Equal(t, "river2", updated.Username)
	assert.Equal(t, db_models.ThemeDark, updated.Preferences.Theme)
	assert.Equal(t, "en", updated.Preferences.Language)
}

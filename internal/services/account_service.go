package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"mindcare/internal/models/db_models"
	"mindcare/internal/models/request_models"
	"mindcare/internal/models/response_models"
	"mindcare/internal/repositories"
	mem "mindcare/pkg/memcache"
	"mindcare/pkg/metrics"
	"mindcare/pkg/utils"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes and refuses to hash it.
	MaxPasswordBytes  = 72
	minUsernameLength = 3
	maxUsernameLength = 30
	refreshTokenBytes = 32
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response_models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string)
	Authenticate(ctx context.Context, accessToken string) (Principal, error)
	Me(ctx context.Context, p Principal) (*response_models.AccountResponse, error)
	UpdateDetails(ctx context.Context, p Principal, request request_models.UpdateDetailsRequest) (*response_models.AccountResponse, error)
	UpdatePassword(ctx context.Context, p Principal, request request_models.UpdatePasswordRequest) (*response_models.AuthResponse, error)
}

type AccountService struct {
	accountRepo   repositories.AccountRepository
	jwt           *utils.JWTManager
	refreshTokens mem.RefreshTokenStore
	refreshTTL    time.Duration
	metrics       metrics.Recorder
	validate      *validator.Validate
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	refreshTokens mem.RefreshTokenStore,
	refreshTTL time.Duration,
	recorder metrics.Recorder,
) *AccountService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AccountService{
		accountRepo:   accountRepo,
		jwt:           jwt,
		refreshTokens: refreshTokens,
		refreshTTL:    refreshTTL,
		metrics:       recorder,
		validate:      validator.New(),
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error) {
	username := strings.TrimSpace(request.Username)
	email := normalizeEmail(request.Email)

	if err := a.validateUsername(username); err != nil {
		return nil, err
	}
	if err := a.validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(request.Password); err != nil {
		return nil, err
	}

	if err := a.ensureUnique(ctx, uuid.Nil, email, username); err != nil {
		a.metrics.RecordAuthEvent("register", "rejected")
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
		Preferences:  datatypes.NewJSONType(db_models.DefaultPreferences()),
	}

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		if errors.Is(err, utils.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	slog.Info("account registered", "user_id", account.ID)
	a.metrics.RecordAuthEvent("register", "success")
	return a.issue(account)
}

// Login fails identically for unknown emails and wrong passwords.
func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		a.metrics.RecordAuthEvent("login", "invalid_credentials")
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		a.metrics.RecordAuthEvent("login", "invalid_credentials")
		return nil, utils.ErrInvalidCredentials
	}

	a.metrics.RecordAuthEvent("login", "success")
	return a.issue(account)
}

// Refresh consumes the refresh token and returns a rotated pair.
func (a *AccountService) Refresh(ctx context.Context, refreshToken string) (*response_models.TokenPair, error) {
	userID := a.refreshTokens.Consume(refreshToken)
	if userID == "" {
		a.metrics.RecordAuthEvent("refresh", "expired")
		return nil, utils.ErrSessionExpired
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrSessionExpired
	}
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		a.metrics.RecordAuthEvent("refresh", "expired")
		return nil, utils.ErrSessionExpired
	}

	resp, err := a.issue(account)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordAuthEvent("refresh", "success")
	return &resp.TokenPair, nil
}

// Logout is idempotent; unknown or already revoked tokens are only counted.
func (a *AccountService) Logout(_ context.Context, refreshToken string) {
	if _, ok := a.refreshTokens.Peek(refreshToken); !ok {
		a.metrics.RecordAuthEvent("logout", "unknown_token")
		return
	}
	a.refreshTokens.Revoke(refreshToken)
	a.metrics.RecordAuthEvent("logout", "success")
}

// Authenticate resolves an access token to a principal. The account must
// still exist; its current role wins over the role baked into the token.
func (a *AccountService) Authenticate(ctx context.Context, accessToken string) (Principal, error) {
	claims, err := a.jwt.ValidateToken(accessToken)
	if err != nil {
		return Principal{}, utils.ErrUnauthenticated
	}
	id, _ := uuid.Parse(claims.UserID)
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return Principal{}, utils.ErrUnauthenticated
	}
	return Principal{ID: account.ID, Role: account.Role}, nil
}

func (a *AccountService) Me(ctx context.Context, p Principal) (*response_models.AccountResponse, error) {
	account, err := a.load(ctx, p)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewAccountResponse(account)
	return &resp, nil
}

func (a *AccountService) UpdateDetails(ctx context.Context, p Principal, request request_models.UpdateDetailsRequest) (*response_models.AccountResponse, error) {
	account, err := a.load(ctx, p)
	if err != nil {
		return nil, err
	}

	if request.Username != nil {
		username := strings.TrimSpace(*request.Username)
		if err := a.validateUsername(username); err != nil {
			return nil, err
		}
		account.Username = username
	}
	if request.Email != nil {
		email := normalizeEmail(*request.Email)
		if err := a.validateEmail(email); err != nil {
			return nil, err
		}
		account.Email = email
	}
	if request.Preferences != nil {
		prefs, err := normalizePreferences(*request.Preferences)
		if err != nil {
			return nil, err
		}
		account.Preferences = datatypes.NewJSONType(prefs)
	}

	if err := a.ensureUnique(ctx, account.ID, account.Email, account.Username); err != nil {
		return nil, err
	}
	if err := a.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, utils.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := response_models.NewAccountResponse(account)
	return &resp, nil
}

// UpdatePassword revokes every outstanding refresh token of the account and
// returns a fresh session.
func (a *AccountService) UpdatePassword(ctx context.Context, p Principal, request request_models.UpdatePasswordRequest) (*response_models.AuthResponse, error) {
	account, err := a.load(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.CurrentPassword); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := validatePassword(request.NewPassword); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hashedPassword

	if err := a.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.refreshTokens.RevokeUser(account.ID.String())
	return a.issue(account)
}

// ---- helpers ----

func (a *AccountService) load(ctx context.Context, p Principal) (*db_models.Account, error) {
	account, err := a.accountRepo.FindById(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrUnauthenticated
	}
	return account, nil
}

func (a *AccountService) issue(account *db_models.Account) (*response_models.AuthResponse, error) {
	accessToken, expiresAt, err := a.jwt.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}
	refreshToken, err := utils.GenerateSecureToken(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}
	a.refreshTokens.Set(refreshToken, account.ID.String(), a.refreshTTL)

	return &response_models.AuthResponse{
		TokenPair: response_models.TokenPair{
			AccessToken:     accessToken,
			AccessExpiresAt: expiresAt,
			RefreshToken:    refreshToken,
		},
		User: response_models.NewAccountResponse(account),
	}, nil
}

func (a *AccountService) ensureUnique(ctx context.Context, self uuid.UUID, email, username string) error {
	byEmail, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if byEmail != nil && byEmail.ID != self {
		return fmt.Errorf("%w: email already registered", utils.ErrDuplicateIdentity)
	}

	byUsername, err := a.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if byUsername != nil && byUsername.ID != self {
		return fmt.Errorf("%w: username already taken", utils.ErrDuplicateIdentity)
	}
	return nil
}

func (a *AccountService) validateEmail(email string) error {
	if err := a.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: please provide a valid email", utils.ErrValidation)
	}
	return nil
}

func (a *AccountService) validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return fmt.Errorf("%w: username must be between %d and %d characters", utils.ErrValidation, minUsernameLength, maxUsernameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", utils.ErrValidation, MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password cannot be longer than %d bytes", utils.ErrValidation, MaxPasswordBytes)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePreferences(p db_models.Preferences) (db_models.Preferences, error) {
	switch p.Theme {
	case "":
		p.Theme = db_models.ThemeSystem
	case db_models.ThemeLight, db_models.ThemeDark, db_models.ThemeSystem:
	default:
		return p, fmt.Errorf("%w: theme must be one of light, dark, system", utils.ErrValidation)
	}
	if p.ReminderTime != "" {
		if _, err := time.Parse("15:04", p.ReminderTime); err != nil {
			return p, fmt.Errorf("%w: reminder_time must be HH:MM", utils.ErrValidation)
		}
	}
	if p.Language == "" {
		p.Language = "en"
	}
	return p, nil
}

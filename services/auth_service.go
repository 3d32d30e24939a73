package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/url"
	"strings"

	"kuuslauk/config"
	"kuuslauk/models"
	"kuuslauk/repositories"
	"kuuslauk/utils"

	"github.com/rs/zerolog"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, claims *utils.AdminClaims) (*models.AdminUser, error)
	ChangePassword(ctx context.Context, adminID int64, req models.ChangePasswordRequest) error

	// ForgotPassword never reports whether the account exists.
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	ParseSession(token string) (*utils.AdminClaims, error)

	// EnsureAdmin creates the admin account when no account with that email
	// exists yet.
	EnsureAdmin(ctx context.Context, email, name, password string) error
}

type authService struct {
	admins     repositories.AdminRepository
	tokens     *utils.TokenManager
	notifier   Notifier
	dispatcher *Dispatcher
	devAdmin   *config.DevAdminConfig
	baseURL    string
	logger     zerolog.Logger
}

// NewAuthService accepts a nil repository when no database is configured.
// The dev credential pair is honoured only in that case and only when
// devAdmin is non-nil.
func NewAuthService(
	admins repositories.AdminRepository,
	tokens *utils.TokenManager,
	notifier Notifier,
	dispatcher *Dispatcher,
	devAdmin *config.DevAdminConfig,
	baseURL string,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		admins:     admins,
		tokens:     tokens,
		notifier:   notifier,
		dispatcher: dispatcher,
		devAdmin:   devAdmin,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if s.admins == nil {
		return s.devLogin(email, req.Password)
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Warn().Str("email", email).Msg("login attempt for unknown admin")
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		s.logger.Warn().Int64("admin_id", admin.ID).Msg("login attempt with wrong password")
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(admin.ID, admin.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("admin_id", admin.ID).Msg("admin logged in")
	return &models.LoginResponse{User: *admin, Token: token}, nil
}

func (s *authService) devLogin(email, password string) (*models.LoginResponse, error) {
	if s.devAdmin == nil {
		return nil, models.ErrDatabaseUnavailable
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(s.devAdmin.Email))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.devAdmin.Password)) == 1
	if !emailOK || !passOK {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(0, email)
	if err != nil {
		return nil, err
	}

	s.logger.Warn().Str("email", email).Msg("dev admin logged in without database")
	return &models.LoginResponse{User: devUser(email), Token: token}, nil
}

func devUser(email string) models.AdminUser {
	return models.AdminUser{Email: email, Name: "Admin"}
}

func (s *authService) Me(ctx context.Context, claims *utils.AdminClaims) (*models.AdminUser, error) {
	if s.admins == nil {
		return ptr(devUser(claims.Email)), nil
	}

	admin, err := s.admins.FindByID(ctx, claims.AdminID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	return admin, err
}

func (s *authService) ChangePassword(ctx context.Context, adminID int64, req models.ChangePasswordRequest) error {
	if s.admins == nil {
		return models.ErrDatabaseUnavailable
	}

	admin, err := s.admins.FindByID(ctx, adminID)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrUnauthorized
	}
	if err != nil {
		return err
	}

	if !utils.VerifyPassword(admin.PasswordHash, req.CurrentPassword) {
		return models.ErrInvalidCredentials
	}

	if err := s.setPassword(ctx, admin.ID, req.NewPassword); err != nil {
		return err
	}

	s.logger.Info().Int64("admin_id", admin.ID).Msg("admin password changed")
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	if s.admins == nil {
		return models.ErrDatabaseUnavailable
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	admin, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Info().Str("email", email).Msg("password reset requested for unknown admin")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.tokens.IssueReset(admin.ID, admin.Email, admin.PasswordHash)
	if err != nil {
		return err
	}

	resetURL := s.baseURL + "/admin/reset-password?token=" + url.QueryEscape(token)
	expiresIn := s.tokens.ResetTTL()
	recipient := *admin
	s.dispatcher.Go("password_reset", func(ctx context.Context) error {
		return s.notifier.PasswordReset(ctx, recipient, resetURL, expiresIn)
	})

	s.logger.Info().Int64("admin_id", admin.ID).Msg("password reset requested")
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if s.admins == nil {
		return models.ErrDatabaseUnavailable
	}

	claims, err := s.tokens.Parse(req.Token, utils.PurposeReset)
	if err != nil {
		return models.InvalidInput("Reset link is invalid or has expired")
	}

	admin, err := s.admins.FindByID(ctx, claims.AdminID)
	if errors.Is(err, models.ErrNotFound) {
		return models.InvalidInput("Reset link is invalid or has expired")
	}
	if err != nil {
		return err
	}

	if claims.Fingerprint != utils.PasswordFingerprint(admin.PasswordHash) {
		return models.InvalidInput("Reset link has already been used")
	}

	if err := s.setPassword(ctx, admin.ID, req.NewPassword); err != nil {
		return err
	}

	s.logger.Info().Int64("admin_id", admin.ID).Msg("admin password reset")
	return nil
}

func (s *authService) ParseSession(token string) (*utils.AdminClaims, error) {
	claims, err := s.tokens.Parse(token, utils.PurposeSession)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, name, password string) error {
	if s.admins == nil {
		return models.ErrDatabaseUnavailable
	}

	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.admins.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.AdminUser{Email: email, Name: name, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil
		}
		return err
	}

	s.logger.Info().Int64("admin_id", admin.ID).Str("email", email).Msg("bootstrap admin created")
	return nil
}

func (s *authService) setPassword(ctx context.Context, adminID int64, password string) error {
	if len(password) < 8 {
		return models.InvalidInput("Password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, adminID, hash)
}

func ptr[T any](v T) *T {
	return &v
}

package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/tickethub/internal/config"
	"github.com/spec-kit/tickethub/internal/domain"
	"github.com/spec-kit/tickethub/internal/repository"
	apperrors "github.com/spec-kit/tickethub/pkg/util"
)

const minPasswordLength = 6

// dummyHash is compared against when login hits an unknown email, so the
// unknown-email and wrong-password paths both cost one bcrypt verify.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

// AuthService coordinates registration, login and password reset flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	bcryptCost int
	resetTTL   time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, resets repository.PasswordResetRepository) *AuthService {
	return &AuthService{
		users:      users,
		resets:     resets,
		bcryptCost: cfg.BcryptCost,
		resetTTL:   cfg.ResetTTL(),
	}
}

// Register validates signup input and creates the account. The taken-email
// case is the only failure that names its cause distinctly; all other
// validation failures carry field-level messages.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirmPassword string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, apperrors.NewValidationError("Please fill in all fields", nil)
	}
	if !validEmail(email) {
		return nil, apperrors.NewValidationError("Please enter a valid email address", map[string]any{"email": "invalid"})
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidationError("Password must be at least 6 characters long", map[string]any{"password": "too short"})
	}
	if password != confirmPassword {
		return nil, apperrors.NewValidationError("Passwords do not match", map[string]any{"confirm_password": "mismatch"})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered. Please login instead.")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewPersistenceError("Registration failed. Please try again.", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewPersistenceError("Registration failed. Please try again.", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewPersistenceError("Registration failed. Please try again.", err)
	}
	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password yield the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Please fill in all fields", nil)
	}
	if !validEmail(email) {
		return nil, apperrors.NewValidationError("Please enter a valid email address", map[string]any{"email": "invalid"})
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, apperrors.NewAuthenticationError("Invalid email or password")
		}
		return nil, apperrors.NewPersistenceError("Login failed. Please try again.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewAuthenticationError("Invalid email or password")
	}
	return user, nil
}

// RequestPasswordReset issues a single-use TTL'd token for a known email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("Please fill in all fields", nil)
	}
	if !validEmail(email) {
		return nil, apperrors.NewValidationError("Please enter a valid email address", map[string]any{"email": "invalid"})
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Email not registered")
		}
		return nil, apperrors.NewPersistenceError("Password reset failed. Please try again.", err)
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, apperrors.NewPersistenceError("Password reset failed. Please try again.", err)
	}
	return token, nil
}

// ConfirmPasswordReset validates the token and replaces the stored hash.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, password, confirmPassword string) error {
	if tokenStr == "" || password == "" || confirmPassword == "" {
		return apperrors.NewValidationError("Please fill in all fields", nil)
	}
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError("Password must be at least 6 characters long", map[string]any{"password": "too short"})
	}
	if password != confirmPassword {
		return apperrors.NewValidationError("Passwords do not match", map[string]any{"confirm_password": "mismatch"})
	}

	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Invalid or expired reset token")
		}
		return apperrors.NewPersistenceError("Password reset failed. Please try again.", err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewNotFound("Invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return apperrors.NewPersistenceError("Password reset failed. Please try again.", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, token.UserID, string(hash)); err != nil {
		return apperrors.NewPersistenceError("Password reset failed. Please try again.", err)
	}
	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		return apperrors.NewPersistenceError("Password reset failed. Please try again.", err)
	}
	return nil
}

// validEmail applies the same syntactic gate the signup form does
// client-side. mail.ParseAddress accepts display names, so the parsed
// address must round-trip to the raw input.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

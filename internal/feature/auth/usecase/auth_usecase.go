package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/feature/auth/domain/entity"
)

const (
	// bcryptCost is the adaptive hash cost for stored passwords.
	bcryptCost = 12

	// sessionTTL is how long a session stays valid without re-login.
	sessionTTL = 7 * 24 * time.Hour

	// resetTokenTTL is the validity window of a password-reset token.
	resetTokenTTL = time.Hour
)

// dummyHash is compared against when the email is unknown so that login
// always performs one bcrypt comparison regardless of user existence.
const dummyHash = "$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists when the
	// email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email. Returns ErrUserNotFound on miss.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID. Returns ErrUserNotFound on miss.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// SetResetToken stores the reset token pair on the user.
	SetResetToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error

	// ClearResetToken removes both reset-token fields.
	ClearResetToken(ctx context.Context, userID uint) error

	// FindByResetToken retrieves the user holding the given token.
	// Expiry is checked by the caller. Returns ErrUserNotFound on miss.
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)

	// UpdatePasswordAndClearResetToken replaces the password hash and
	// clears both reset-token fields in a single write.
	UpdatePasswordAndClearResetToken(ctx context.Context, userID uint, passwordHash string) error
}

// Mailer dispatches transactional email. Sends are fire-and-forget from
// this usecase's point of view: failures are logged, never returned.
type Mailer interface {
	SendWelcome(ctx context.Context, email, firstName string) error
	SendPasswordReset(ctx context.Context, email, firstName, token string) error
}

// ClientInfo carries request metadata recorded on new sessions.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// SignupParams is the input for user registration.
type SignupParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	mailer   Mailer
}

// NewAuthUsecase creates a new instance of authUsecase.
// mailer may be nil; email sends are then skipped.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, mailer Mailer) *authUsecase {
	return &authUsecase{users: users, sessions: sessions, mailer: mailer}
}

// normalizeEmail trims and lower-cases an email for lookup and storage.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newToken returns 32 random bytes hex-encoded (64 characters).
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// establishSession creates and persists a session for the user.
func (u *authUsecase) establishSession(ctx context.Context, userID uint, client ClientInfo) (*entity.Session, error) {
	id, err := newToken()
	if err != nil {
		return nil, apperrors.Internal("Failed to create session", err)
	}
	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, apperrors.Internal("Failed to create session", err)
	}
	return session, nil
}

// Signup registers a new user with a hashed password, establishes a session
// and sends a welcome email best-effort. A failed email never fails signup.
func (u *authUsecase) Signup(ctx context.Context, params SignupParams, client ClientInfo) (*entity.User, *entity.Session, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, nil, apperrors.Internal("Failed to create user", err)
	}

	user := &entity.User{
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Email:     normalizeEmail(params.Email),
		Password:  string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, nil, err
		}
		return nil, nil, apperrors.Internal("Failed to create user", err)
	}

	if u.mailer != nil {
		if err := u.mailer.SendWelcome(ctx, user.Email, user.FirstName); err != nil {
			slog.Warn("welcome email failed", "error", err, "email", user.Email)
		}
	}

	session, err := u.establishSession(ctx, user.ID, client)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates the credentials and establishes a session.
// Unknown email and password mismatch return the identical error; a bcrypt
// comparison runs in both cases to keep the timing indistinguishable too.
// A pending password-reset token is cleared on successful login.
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (*entity.User, *entity.Session, error) {
	user, findErr := u.users.FindByEmail(ctx, normalizeEmail(email))

	passwordHash := dummyHash
	if findErr == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if findErr != nil || compareErr != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if user.ResetToken != nil || user.ResetTokenExpiresAt != nil {
		if err := u.users.ClearResetToken(ctx, user.ID); err != nil {
			return nil, nil, apperrors.Internal("Login failed", err)
		}
		user.ResetToken = nil
		user.ResetTokenExpiresAt = nil
	}

	session, err := u.establishSession(ctx, user.ID, client)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout destroys the session. A missing session is not an error.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return apperrors.Internal("Logout failed", err)
	}
	return nil
}

// RequestPasswordReset stores a fresh reset token with a one-hour expiry
// and dispatches it by email. The response is identical whether or not the
// email is registered, so account existence is never revealed.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Debug("password reset requested for unknown email")
			return nil
		}
		return apperrors.Internal("Password reset failed", err)
	}

	token, err := newToken()
	if err != nil {
		return apperrors.Internal("Password reset failed", err)
	}
	if err := u.users.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return apperrors.Internal("Password reset failed", err)
	}

	if u.mailer != nil {
		if err := u.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, token); err != nil {
			slog.Warn("password reset email failed", "error", err, "email", user.Email)
		}
	}
	return nil
}

// ResetPassword consumes a reset token: rehashes the password, clears the
// token pair in one write, revokes every existing session for the user and
// establishes a fresh one. Revoking first means a stolen session dies with
// the old password.
func (u *authUsecase) ResetPassword(ctx context.Context, token, password string, client ClientInfo) (*entity.User, *entity.Session, error) {
	user, err := u.users.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidResetToken
		}
		return nil, nil, apperrors.Internal("Password reset failed", err)
	}
	if !user.HasValidResetToken(time.Now()) {
		return nil, nil, ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, apperrors.Internal("Password reset failed", err)
	}
	if err := u.users.UpdatePasswordAndClearResetToken(ctx, user.ID, string(hashed)); err != nil {
		return nil, nil, apperrors.Internal("Password reset failed", err)
	}
	user.Password = string(hashed)
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil

	if err := u.sessions.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, nil, apperrors.Internal("Password reset failed", err)
	}

	session, err := u.establishSession(ctx, user.ID, client)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// CurrentUser resolves the user attached to a session ID, for the auth
// status endpoint. Returns ErrSessionNotFound for missing/expired sessions.
func (u *authUsecase) CurrentUser(ctx context.Context, sessionID string) (*entity.User, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return u.users.FindByID(ctx, session.UserID)
}

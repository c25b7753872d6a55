// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/feature/auth/transport/http/dto"
	"storefront_backend/internal/feature/auth/usecase"
	"storefront_backend/internal/platform/session"
)

// AuthUsecase defines the authentication operations this handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, params usecase.SignupParams, client usecase.ClientInfo) (*entity.User, *entity.Session, error)
	Login(ctx context.Context, email, password string, client usecase.ClientInfo) (*entity.User, *entity.Session, error)
	Logout(ctx context.Context, sessionID string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string, client usecase.ClientInfo) (*entity.User, *entity.Session, error)
	CurrentUser(ctx context.Context, sessionID string) (*entity.User, error)
}

// AuthHandler handles the session-lifecycle endpoints.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// clientInfo extracts the request metadata recorded on new sessions.
func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// setSessionCookie attaches the session token as an HttpOnly cookie.
func setSessionCookie(c *gin.Context, s *entity.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, s.ID, int(time.Until(s.ExpiresAt).Seconds()), "/", "", false, true)
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}

// Status reports whether the request carries a valid session.
// Never fails: a missing or invalid session is a regular "logged out" answer.
func (h *AuthHandler) Status(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err != nil || token == "" {
		api.OK(c, http.StatusOK, "Auth status retrieved", gin.H{"isLoggedIn": false})
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		api.OK(c, http.StatusOK, "Auth status retrieved", gin.H{"isLoggedIn": false})
		return
	}
	api.OK(c, http.StatusOK, "Auth status retrieved", gin.H{"isLoggedIn": true, "user": user})
}

// Signup handles user registration: creates the user with an empty cart,
// establishes a session and returns the new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	params := usecase.SignupParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	user, sess, err := h.auth.Signup(c.Request.Context(), params, clientInfo(c))
	if err != nil {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, err)
		return
	}
	setSessionCookie(c, sess)
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	api.OK(c, http.StatusCreated, "Sign up successful", gin.H{"user": user})
}

// Login authenticates credentials and establishes a session. Unknown email
// and wrong password produce the identical response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, sess, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, err)
		return
	}
	setSessionCookie(c, sess)
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	api.OK(c, http.StatusOK, "Login successful", gin.H{"user": user})
}

// Logout destroys the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			api.Fail(c, err)
			return
		}
	}
	clearSessionCookie(c)
	api.OK(c, http.StatusOK, "Logout successful", nil)
}

// PasswordReset issues a reset token and dispatches it by email. The
// response does not reveal whether the email is registered.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req dto.PasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		api.Fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Password reset email sent", nil)
}

// NewPassword consumes a reset token and sets the new password.
func (h *AuthHandler) NewPassword(c *gin.Context) {
	var req dto.NewPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, sess, err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password, clientInfo(c))
	if err != nil {
		if !errors.Is(err, usecase.ErrInvalidResetToken) {
			slog.Warn("password reset failed", "error", err, "remote_addr", c.ClientIP())
		}
		api.Fail(c, err)
		return
	}
	setSessionCookie(c, sess)
	api.OK(c, http.StatusOK, "New password updated successfully", gin.H{"user": user})
}

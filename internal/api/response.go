// Package api defines the JSON response envelope and the central
// error-to-status translation used by every handler.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/apperrors"
)

// MessageResponse is the envelope for responses without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OK writes the success envelope: {"message": ..., <dataKey>: <payload>}.
// data may be nil for message-only responses.
func OK(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"message": message}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail translates err into its HTTP status and writes the error envelope.
// Internal errors are logged with their cause and surfaced with a generic
// message so internal detail never leaks to the caller.
func Fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	msg := err.Error()

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		msg = "Something went wrong. Please try again later."
	} else {
		var e *apperrors.Error
		if errors.As(err, &e) {
			msg = e.Message()
		}
	}

	c.JSON(status, ErrorResponse{Error: msg})
}

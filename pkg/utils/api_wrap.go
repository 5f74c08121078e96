package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Success: true,
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Success: false,
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP status codes.
// Validation messages are surfaced verbatim so the caller can correct input.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, detailOf(err, ErrValidation))
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Limit must be between 1 and 100")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrSessionExpired):
		RespondError(c, http.StatusUnauthorized, "Session expired, please log in again")
	case errors.Is(err, ErrUnauthenticated):
		RespondError(c, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, ErrNotAuthorized):
		RespondError(c, http.StatusForbidden, "Not authorized to access this resource")
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, detailOf(err, ErrNotFound))
	case errors.Is(err, ErrDuplicateIdentity):
		RespondError(c, http.StatusConflict, detailOf(err, ErrDuplicateIdentity))
	case errors.Is(err, ErrUpstreamUnavailable):
		slog.Warn("upstream unavailable", "error", err, "trace_id", traceIDOf(c))
		RespondError(c, http.StatusServiceUnavailable, "AI service is currently unavailable, please try again later")
	case errors.Is(err, ErrDatabaseError):
		slog.Error("database error", "error", err, "trace_id", traceIDOf(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		slog.Error("unknown error", "error", err, "trace_id", traceIDOf(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// detailOf strips the sentinel prefix from a wrapped error ("validation error: x" -> "x").
func detailOf(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

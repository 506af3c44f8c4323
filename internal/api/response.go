package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vietddude/employees/internal/core/domain"
)

const (
	msgRateLimited  = "Too many requests to the employee service, please try again later"
	msgUnavailable  = "External service is currently unavailable. Please try again later."
	msgUnexpected   = "An unexpected error occurred"
	msgMalformedReq = "request body must be a valid JSON object"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Timestamp        time.Time `json:"timestamp"`
	Status           int       `json:"status"`
	Error            string    `json:"error"`
	Message          string    `json:"message"`
	Path             string    `json:"path"`
	ValidationErrors []string  `json:"validation_errors,omitempty"`
}

// statusFor maps a classified failure to its HTTP status and client-facing
// message. Remote causes are never echoed back.
func statusFor(err error) (int, string, []string) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, msgUnexpected, nil
	}

	switch de.Kind {
	case domain.KindInvalidIdentifier:
		return http.StatusBadRequest, de.Message, nil
	case domain.KindInvalidRequest:
		return http.StatusBadRequest, de.Message, de.Violations
	case domain.KindNotFound:
		return http.StatusNotFound, de.Message, nil
	case domain.KindRateLimited:
		return http.StatusTooManyRequests, msgRateLimited, nil
	case domain.KindExternalService:
		return http.StatusServiceUnavailable, msgUnavailable, nil
	default:
		return http.StatusInternalServerError, msgUnexpected, nil
	}
}

func respondError(c *gin.Context, log *slog.Logger, err error) {
	status, msg, violations := statusFor(err)

	fields := []any{
		"path", c.Request.URL.Path,
		"status", status,
		"kind", domain.KindOf(err).String(),
		"error", err,
	}
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		log.Error("Request failed", fields...)
	} else {
		log.Warn("Request rejected", fields...)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Timestamp:        time.Now().UTC(),
		Status:           status,
		Error:            http.StatusText(status),
		Message:          msg,
		Path:             c.Request.URL.Path,
		ValidationErrors: violations,
	})
}

package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/wonny/marketdesk/internal/api/middleware"
	"github.com/wonny/marketdesk/internal/service"
)

// ErrorResponse is the body of every error. Clients read Error verbatim.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Error codes
const (
	ErrCodeInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
	ErrCodeNotFound         = "NOT_FOUND"
)

// Error sends an error response
func Error(c *gin.Context, statusCode int, code, message string) {
	requestID := middleware.GetRequestID(c)

	event := log.Warn()
	if statusCode >= 500 {
		event = log.Error()
	}
	event.
		Str("request_id", requestID).
		Str("error_code", code).
		Str("message", message).
		Int("status", statusCode).
		Msg("API error response")

	c.JSON(statusCode, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, ErrCodeInvalidParameter, message)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError sends a 500 without leaking err to the client
func InternalError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("Internal server error")
	}
	Error(c, http.StatusInternalServerError, ErrCodeInternalServer, "An unexpected error occurred")
}

// ServiceError maps a service error to its HTTP status
func ServiceError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		InternalError(c, err)
		return
	}

	switch svcErr.Kind {
	case service.KindInvalidRequest:
		BadRequest(c, svcErr.Message)
	case service.KindNotFound:
		NotFound(c, svcErr.Message)
	default:
		InternalError(c, err)
	}
}

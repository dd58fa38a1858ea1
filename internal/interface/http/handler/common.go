package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// handleError handles domain errors and returns appropriate HTTP responses
func handleError(c *gin.Context, err error) {
	// Check for domain errors
	var domainErr *entity.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(getStatusCode(domainErr.Code), ErrorResponse{
			Error:   domainErr.Message,
			Code:    domainErr.Code,
			Details: "",
		})
		return
	}

	// Map known errors to status codes
	switch {
	case errors.Is(err, entity.ErrMissingTopic),
		errors.Is(err, entity.ErrInvalidStyle),
		errors.Is(err, entity.ErrInvalidAspect),
		errors.Is(err, entity.ErrInvalidDuration),
		errors.Is(err, entity.ErrInvalidProvider),
		errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "BAD_REQUEST",
		})

	case errors.Is(err, entity.ErrNoViableProvider),
		errors.Is(err, entity.ErrProviderUnavailable),
		errors.Is(err, entity.ErrProviderTimeout):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: err.Error(),
			Code:  "SERVICE_UNAVAILABLE",
		})

	case errors.Is(err, entity.ErrTransport):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: err.Error(),
			Code:  "TRANSPORT_ERROR",
		})

	default:
		// Return a generic error without exposing the underlying cause
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		})
	}
}

// getStatusCode maps domain error codes to HTTP status codes
func getStatusCode(code string) int {
	switch code {
	case "BAD_REQUEST", "INVALID_INPUT", "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "SERVICE_UNAVAILABLE", "NO_VIABLE_PROVIDER":
		return http.StatusServiceUnavailable
	case "TRANSPORT_ERROR":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

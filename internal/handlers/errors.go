package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/repositories"
	"pdbstore/internal/responses"
	"pdbstore/internal/services"
)

// statusFor maps service and repository errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrUniquenessViolation):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrNullPrimaryKey),
		errors.Is(err, repositories.ErrOutOfRange),
		errors.Is(err, services.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrComponentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with the status it maps to. Server errors are logged
// and their details are kept out of the response body.
func fail(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), message, "error", err, "path", c.FullPath())
		responses.Fail(c, status, nil, message)
		return
	}
	responses.Fail(c, status, err, message)
}

package handler

import (
	"net/http"

	domainerr "github.com/propstake/token-ledger/internal/domain/error"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsForbiddenError(err):
		return http.StatusForbidden
	case domainerr.IsValidationError(err):
		return http.StatusBadRequest
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsConflictError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a standardized error response. Internal errors never
// leak their details to the client.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// callerIdentity reads the authenticated user and role from the request context
func callerIdentity(c *gin.Context) (string, string) {
	return c.GetString(middleware.ContextUserIDKey), c.GetString(middleware.ContextRoleKey)
}

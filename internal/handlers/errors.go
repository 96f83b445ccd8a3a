package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates a service error to a status code and JSON body.
// entity names the resource in 404 messages; action is used for 500 messages.
// Only validation messages are passed through; anything unexpected is logged
// and answered with a generic message.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, entity, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized call", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicting request, please retry"})
	default:
		logger.Error("Service call failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// validationMessage prefers the user-facing text of a ValidationError over the wrapped chain.
func validationMessage(err error) string {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

// requireUserID aborts with 401 when AuthMiddleware did not run.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondServiceError(c, logger, fmt.Errorf("user ID not found in context: %w", apperrors.ErrUnauthorized), "", "authorize request")
		return "", false
	}
	return userID, true
}

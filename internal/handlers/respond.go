package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/services"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
)

// respondServiceError maps service-layer errors to HTTP responses. Validation
// failures surface their message; everything unexpected hides behind fallback.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrAmountNotPositive),
		errors.Is(err, services.ErrInvalidServiceType),
		errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrInvalidOverrideValue),
		errors.Is(err, services.ErrMonthlyRateNotPositive):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, services.ErrSubjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDayLocked),
		errors.Is(err, apperrors.ErrAlreadyCorrected),
		errors.Is(err, apperrors.ErrNotLocked),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, services.ErrCannotCorrectCorrection):
		logger.Warn("Conflicting ledger operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// requireActorID extracts the acting user from the request context. Writes
// without an actor are rejected so audit fields stay attributable.
func requireActorID(c *gin.Context, logger *slog.Logger) (string, bool) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Warn("Actor ID missing from request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return "", false
	}
	return actorID, true
}

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	apperrors "unifest/internal/errors"
	"unifest/internal/pricing"
	"unifest/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// respondError maps domain errors to HTTP statuses. Anything unrecognized is
// logged and hidden behind a generic 500.
func (h *Handlers) respondError(c *gin.Context, err error, fallback string) {
	var validationErr *service.TeamValidationError
	var persistenceErr *apperrors.TeamPersistenceError
	var sizeErr *pricing.TeamSizeError
	var configErr *pricing.ConfigError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid team data",
			"errors": validationErr.Result.Errors,
		})
	case errors.As(err, &sizeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": sizeErr.Error()})
	case errors.As(err, &configErr):
		slog.Error("Pricing configuration gap", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": configErr.Error()})
	case errors.As(err, &persistenceErr):
		// The registration committed before the team write failed: return the
		// id so the client can retry or cancel instead of re-registering.
		slog.Error("Team persistence failure", "error", err,
			"registration_id", persistenceErr.RegistrationID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":           "Registration saved but team could not be stored",
			"registration_id": persistenceErr.RegistrationID,
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrRegistrationNotFound),
		errors.Is(err, apperrors.ErrTeamNotFound),
		errors.Is(err, apperrors.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRegistrationClosed),
		errors.Is(err, apperrors.ErrCapacityFull),
		errors.Is(err, apperrors.ErrTicketNotPaid),
		errors.Is(err, apperrors.ErrTicketUsed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

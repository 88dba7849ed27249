package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/event"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/subscription"
	"github.com/BenAji/agora/internal/domain/user"
)

// statusFor maps domain errors onto the HTTP taxonomy:
// 400 invalid argument, 403 forbidden, 404 not found, 409 conflict,
// anything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, event.ErrNotFound),
		errors.Is(err, rsvp.ErrNotFound),
		errors.Is(err, rsvp.ErrEventNotFound),
		errors.Is(err, subscription.ErrNotFound),
		errors.Is(err, company.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, event.ErrInvalidEventType),
		errors.Is(err, event.ErrInvalidTimeRange),
		errors.Is(err, event.ErrNameRequired),
		errors.Is(err, rsvp.ErrInvalidStatus),
		errors.Is(err, subscription.ErrSectorRequired),
		errors.Is(err, subscription.ErrInvalidStatus),
		errors.Is(err, company.ErrNameRequired),
		errors.Is(err, company.ErrCatalogFieldsRequired),
		errors.Is(err, user.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, subscription.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, subscription.ErrDuplicateActive),
		errors.Is(err, rsvp.ErrDuplicate),
		errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status with a short error body. Internal
// failures get a generic message; details stay in the server log.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

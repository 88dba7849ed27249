package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BenAji/agora/internal/api/middleware"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/user"
)

// RSVPHandler handles HTTP requests for event RSVPs
type RSVPHandler struct {
	service rsvp.Service
}

// NewRSVPHandler creates a new RSVP handler instance
func NewRSVPHandler(service rsvp.Service) *RSVPHandler {
	return &RSVPHandler{service: service}
}

type upsertRSVPRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	Status  string    `json:"status" binding:"required,rsvpstatus" example:"ACCEPTED"`
}

// Upsert godoc
// @Summary RSVP to an event
// @Description Create the caller's RSVP for an event, or overwrite its status
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rsvp body upsertRSVPRequest true "RSVP information"
// @Success 200 {object} rsvp.RSVP
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/rsvp [post]
func (h *RSVPHandler) Upsert(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req upsertRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Upsert(c.Request.Context(), userID, req.EventID, rsvp.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	// Both paths answer 200; the message and the created flag tell them apart
	message := "RSVP updated"
	if result.Created {
		message = "RSVP created"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "rsvp": result.RSVP, "created": result.Created})
}

// ListByUser godoc
// @Summary List a user's RSVPs
// @Description List RSVPs for a user. Callers may view their own; managers and IR admins may view anyone's.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID" format(uuid)
// @Success 200 {array} rsvp.RSVP
// @Failure 403 {object} map[string]string
// @Router /api/rsvp/user/{userID} [get]
func (h *RSVPHandler) ListByUser(c *gin.Context) {
	callerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	targetID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if targetID != callerID {
		role, _ := middleware.GetUserRole(c)
		if role != string(user.RoleIRAdmin) && role != string(user.RoleAnalystManager) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
	}

	rsvps, err := h.service.ListByUser(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rsvps": rsvps, "total": len(rsvps)})
}

// EventSummary godoc
// @Summary RSVP summary for an event
// @Description RSVPs for an event grouped by status with per-status counts
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID" format(uuid)
// @Success 200 {object} rsvp.EventSummary
// @Failure 404 {object} map[string]string
// @Router /api/rsvp/event/{eventID} [get]
func (h *RSVPHandler) EventSummary(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	summary, err := h.service.SummarizeEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Delete godoc
// @Summary Withdraw an RSVP
// @Description Remove the caller's RSVP for an event
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID" format(uuid)
// @Success 204 "RSVP removed"
// @Failure 404 {object} map[string]string
// @Router /api/rsvp/{eventID} [delete]
func (h *RSVPHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, eventID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

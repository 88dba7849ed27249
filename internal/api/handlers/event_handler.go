package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BenAji/agora/internal/domain/event"
)

// EventHandler handles HTTP requests for events
type EventHandler struct {
	service event.Service
}

// NewEventHandler creates a new event handler instance
func NewEventHandler(service event.Service) *EventHandler {
	return &EventHandler{service: service}
}

// CreateEvent godoc
// @Summary Publish a new event
// @Description Create a calendar event. IR admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body event.CreateEventRequest true "Event information"
// @Success 201 {object} event.Event
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": created})
}

// ListEvents godoc
// @Summary List events
// @Description Filtered, paginated event list
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param sector query string false "GICS sector filter"
// @Param event_type query string false "Event type filter"
// @Param ticker query string false "Ticker symbol filter"
// @Param start_date query string false "Range start (RFC3339)" format(date-time)
// @Param end_date query string false "Range end (RFC3339)" format(date-time)
// @Param limit query int false "Page size (default: 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} event.EventListResponse
// @Failure 400 {object} map[string]string
// @Router /api/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var params struct {
		Sector    *string     `form:"sector"`
		EventType *event.Type `form:"event_type"`
		Ticker    *string     `form:"ticker"`
		StartDate *time.Time  `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
		EndDate   *time.Time  `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
		Limit     int         `form:"limit,default=50" binding:"min=0,max=200"`
		Offset    int         `form:"offset,default=0" binding:"min=0"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.ListEvents(c.Request.Context(), event.Filter{
		Sector:    params.Sector,
		EventType: params.EventType,
		Ticker:    params.Ticker,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Single event with its RSVP list
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" format(uuid)
// @Success 200 {object} event.Event
// @Failure 404 {object} map[string]string
// @Router /api/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	e, err := h.service.GetEventByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": e})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Update an existing event. IR admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" format(uuid)
// @Param event body event.UpdateEventRequest true "Fields to update"
// @Success 200 {object} event.Event
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req event.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": updated})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Delete an event and its dependent RSVPs. IR admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID" format(uuid)
// @Success 204 "Event deleted"
// @Failure 404 {object} map[string]string
// @Router /api/events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/middleware"
	"github.com/BenAji/agora/internal/domain/calendar"
	"github.com/BenAji/agora/internal/domain/event"
)

// CalendarHandler handles the aggregated calendar views
type CalendarHandler struct {
	service calendar.Service
}

// NewCalendarHandler creates a new calendar handler instance
func NewCalendarHandler(service calendar.Service) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// MonthGrid godoc
// @Summary Month calendar grid
// @Description Company × date grid with the caller's RSVP overlay and summary statistics
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD, default: first day of current month)"
// @Param end_date query string false "Range end (YYYY-MM-DD, default: last day of current month)"
// @Param sector query string false "GICS sector filter"
// @Param event_type query string false "Event type filter"
// @Param tickers query string false "Comma-separated ticker symbols"
// @Success 200 {object} calendar.MonthGrid
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/calendar [get]
func (h *CalendarHandler) MonthGrid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var opts calendar.GridOptions

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return
		}
		opts.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return
		}
		opts.EndDate = &t
	}
	if v := c.Query("sector"); v != "" {
		opts.Sector = &v
	}
	if v := c.Query("event_type"); v != "" {
		t := event.Type(v)
		if !event.IsValidType(t) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_type"})
			return
		}
		opts.EventType = &t
	}
	if v := c.Query("tickers"); v != "" {
		opts.Tickers = strings.Split(v, ",")
	}

	grid, err := h.service.BuildMonthGrid(c.Request.Context(), opts, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}

// WeekGrid godoc
// @Summary Week "my events" view
// @Description Monday-start week of events the caller has RSVP'd to
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param date query string false "Anchor date (YYYY-MM-DD, default: today)"
// @Success 200 {object} calendar.WeekGrid
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/calendar/week [get]
func (h *CalendarHandler) WeekGrid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var anchor time.Time
	if v := c.Query("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		anchor = t
	}

	week, err := h.service.BuildWeekGrid(c.Request.Context(), anchor, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

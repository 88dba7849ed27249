package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BenAji/agora/internal/api/middleware"
	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/subscription"
)

// SubscriptionHandler handles HTTP requests for sector subscriptions
type SubscriptionHandler struct {
	service   subscription.Service
	companies company.Service
}

// NewSubscriptionHandler creates a new subscription handler instance
func NewSubscriptionHandler(service subscription.Service, companies company.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, companies: companies}
}

// Create godoc
// @Summary Subscribe to a sector
// @Description Create an active subscription to a GICS sector, optionally narrowed to a sub-category
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subscription body subscription.CreateSubscriptionRequest true "Subscription information"
// @Success 201 {object} subscription.Subscription
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/subscriptions [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req subscription.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subscription": sub})
}

// List godoc
// @Summary List the caller's subscriptions
// @Description All subscriptions owned by the authenticated user, active or not
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active subscriptions"
// @Success 200 {array} subscription.Subscription
// @Router /api/subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var (
		subs []subscription.Subscription
		err  error
	)
	if c.Query("active") == "true" {
		subs, err = h.service.ListActiveByUser(c.Request.Context(), userID)
	} else {
		subs, err = h.service.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs, "total": len(subs)})
}

// Update godoc
// @Summary Update a subscription
// @Description Change a subscription's sub-category, status or end date. Owner only.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID" format(uuid)
// @Param subscription body subscription.UpdateSubscriptionRequest true "Fields to update"
// @Success 200 {object} subscription.Subscription
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/subscriptions/{id} [put]
func (h *SubscriptionHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription ID"})
		return
	}

	var req subscription.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

// Delete godoc
// @Summary Delete a subscription
// @Description Remove a subscription. Owner only.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID" format(uuid)
// @Success 204 "Subscription deleted"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/subscriptions/{id} [delete]
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SectorCatalog godoc
// @Summary GICS sector catalog
// @Description Sectors and their sub-categories available for subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} company.SectorCatalogEntry
// @Router /api/subscriptions/sectors [get]
func (h *SubscriptionHandler) SectorCatalog(c *gin.Context) {
	catalog, err := h.companies.ListSectorCatalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sectors": catalog})
}

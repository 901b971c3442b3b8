package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"room-lease-backend/internal/lease"
	"room-lease-backend/internal/model"
	"room-lease-backend/internal/mw"
)

type createPropertyRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Address      string  `json:"address" binding:"required"`
	SurfaceTotal float64 `json:"surface_total"`
	Price        float64 `json:"price"`
}

// PostProperty handles POST /api/properties.
func (h *Handler) PostProperty(c *gin.Context) {
	if mw.CallerRole(c) != model.RoleOwner {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only owners may create properties"})
		return
	}

	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := model.Property{
		ID:           uuid.NewString(),
		OwnerID:      mw.CallerID(c),
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		SurfaceTotal: req.SurfaceTotal,
		Price:        req.Price,
	}
	if err := h.store.CreateProperty(c.Request.Context(), &property); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		return
	}
	c.JSON(http.StatusCreated, property)
}

// ListProperties handles GET /api/properties, shaped by role: owners see
// their own, everyone else sees the full listing.
func (h *Handler) ListProperties(c *gin.Context) {
	filter := lease.PropertyFilterForRole(mw.CallerID(c), mw.CallerRole(c))
	properties, err := h.store.PropertiesByFilter(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty handles GET /api/properties/:id. Owners may only read their
// own property; other roles read any.
func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.store.PropertyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, mapStoreErr(err))
		return
	}

	if mw.CallerRole(c) == model.RoleOwner && property.OwnerID != mw.CallerID(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not your property"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /api/properties/:id.
func (h *Handler) DeleteProperty(c *gin.Context) {
	if mw.CallerRole(c) != model.RoleOwner {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only owners may delete properties"})
		return
	}

	property, err := h.store.PropertyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, mapStoreErr(err))
		return
	}
	if property.OwnerID != mw.CallerID(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not your property"})
		return
	}

	if err := h.store.DeleteProperty(c.Request.Context(), property.ID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		return
	}
	c.Status(http.StatusNoContent)
}

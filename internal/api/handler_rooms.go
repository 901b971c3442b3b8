package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"room-lease-backend/internal/lease"
	"room-lease-backend/internal/model"
	"room-lease-backend/internal/mw"
	"room-lease-backend/internal/store"
)

type createRoomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Surface     float64 `json:"surface"`
	Price       float64 `json:"price"`
}

// PostRoom handles POST /api/rooms. Owners register rooms; new rooms start
// available and unattached.
func (h *Handler) PostRoom(c *gin.Context) {
	if mw.CallerRole(c) != model.RoleOwner {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only owners may create rooms"})
		return
	}

	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.registry.CreateRoom(c.Request.Context(), mw.CallerID(c), req.Name, req.Description, req.Surface, req.Price)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /api/rooms with the role-shaped filter: owners see
// their own rooms, everyone else sees available ones.
func (h *Handler) ListRooms(c *gin.Context) {
	filter := lease.RoomFilterForRole(mw.CallerID(c), mw.CallerRole(c))
	rooms, err := h.store.RoomsByFilter(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ListAvailableRooms handles GET /api/rooms/available: available and not
// attached to any property.
func (h *Handler) ListAvailableRooms(c *gin.Context) {
	rooms, err := h.store.RoomsByFilter(c.Request.Context(), store.RoomFilter{
		AvailableOnly: true,
		Unattached:    true,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// AttachRoom handles POST /api/rooms/:id/attach/:property_id.
func (h *Handler) AttachRoom(c *gin.Context) {
	if err := h.authorizeRoomOwner(c); err != nil {
		abortWithError(c, err)
		return
	}

	room, err := h.registry.Attach(c.Request.Context(), c.Param("id"), c.Param("property_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DetachRoom handles POST /api/rooms/:id/detach. Detaching an unattached
// room succeeds as a no-op.
func (h *Handler) DetachRoom(c *gin.Context) {
	if err := h.authorizeRoomOwner(c); err != nil {
		abortWithError(c, err)
		return
	}

	room, err := h.registry.Detach(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id. Blocked while the room carries
// Pending or Active contracts.
func (h *Handler) DeleteRoom(c *gin.Context) {
	if mw.CallerRole(c) != model.RoleOwner {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only owners may delete rooms"})
		return
	}

	if err := h.registry.RemoveRoom(c.Request.Context(), c.Param("id"), mw.CallerID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) authorizeRoomOwner(c *gin.Context) error {
	if mw.CallerRole(c) != model.RoleOwner {
		return lease.ErrForbidden
	}
	_, err := h.registry.VerifyOwnership(c.Request.Context(), c.Param("id"), mw.CallerID(c))
	return err
}

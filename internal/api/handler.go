package api

import (
	"room-lease-backend/internal/lease"
	"room-lease-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	lifecycle *lease.Lifecycle
	registry  *lease.RoomRegistry
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, lifecycle *lease.Lifecycle, registry *lease.RoomRegistry) *Handler {
	return &Handler{
		store:     s,
		lifecycle: lifecycle,
		registry:  registry,
	}
}

package lease

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"room-lease-backend/internal/model"
	"room-lease-backend/internal/store"
)

// RoomRegistry enforces the one-room-one-property attachment invariant,
// room ownership checks and the deletion guard.
type RoomRegistry struct {
	store store.Store
}

// NewRoomRegistry creates a registry backed by the given store.
func NewRoomRegistry(s store.Store) *RoomRegistry {
	return &RoomRegistry{store: s}
}

// CreateRoom registers a new room for the owner. Rooms start available,
// unattached and Free.
func (r *RoomRegistry) CreateRoom(ctx context.Context, ownerID, name, description string, surface, price float64) (model.Room, error) {
	room := model.Room{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Surface:     surface,
		Price:       price,
		Status:      model.StatusFree,
		IsAvailable: true,
	}
	if err := r.store.CreateRoom(ctx, &room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// Attach links the room to the property. It fails with ErrConflict when the
// room is already attached or not marked available, and with ErrNotFound
// when either record is absent.
func (r *RoomRegistry) Attach(ctx context.Context, roomID, propertyID string) (model.Room, error) {
	room, err := r.loadRoom(ctx, roomID)
	if err != nil {
		return model.Room{}, err
	}
	if _, err := r.store.PropertyByID(ctx, propertyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Room{}, fmt.Errorf("property %s: %w", propertyID, ErrNotFound)
		}
		return model.Room{}, err
	}

	if room.PropertyID != nil {
		return model.Room{}, fmt.Errorf("room %s is already attached to a property: %w", roomID, ErrConflict)
	}
	if !room.IsAvailable {
		return model.Room{}, fmt.Errorf("room %s is not available for attachment: %w", roomID, ErrConflict)
	}

	room.PropertyID = &propertyID
	room.IsAvailable = false
	if err := r.store.SaveRoom(ctx, &room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// Detach unlinks the room from its property and marks it available again.
// Detaching an already-detached room is a no-op success.
func (r *RoomRegistry) Detach(ctx context.Context, roomID string) (model.Room, error) {
	room, err := r.loadRoom(ctx, roomID)
	if err != nil {
		return model.Room{}, err
	}

	if room.PropertyID == nil && room.IsAvailable {
		return room, nil
	}

	room.PropertyID = nil
	room.IsAvailable = true
	if err := r.store.SaveRoom(ctx, &room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// VerifyOwnership loads the room and checks the caller owns it.
func (r *RoomRegistry) VerifyOwnership(ctx context.Context, roomID, ownerID string) (model.Room, error) {
	room, err := r.loadRoom(ctx, roomID)
	if err != nil {
		return model.Room{}, err
	}
	if room.OwnerID != ownerID {
		return model.Room{}, fmt.Errorf("user %s does not own room %s: %w", ownerID, roomID, ErrForbidden)
	}
	return room, nil
}

// CanDelete reports whether the room carries no Pending or Active contract.
func (r *RoomRegistry) CanDelete(ctx context.Context, roomID string) (bool, error) {
	contracts, err := r.store.ContractsByFilter(ctx, store.ContractFilter{
		RoomID:   roomID,
		Statuses: []model.LeaseStatus{model.StatusPending, model.StatusActive},
		Limit:    1,
	})
	if err != nil {
		return false, err
	}
	return len(contracts) == 0, nil
}

// RemoveRoom deletes the room after verifying ownership and the deletion
// guard. A room referenced by a Pending or Active contract cannot be
// removed.
func (r *RoomRegistry) RemoveRoom(ctx context.Context, roomID, ownerID string) error {
	if _, err := r.VerifyOwnership(ctx, roomID, ownerID); err != nil {
		return err
	}
	ok, err := r.CanDelete(ctx, roomID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("room %s has pending or active contracts: %w", roomID, ErrConflict)
	}
	return r.store.DeleteRoom(ctx, roomID)
}

func (r *RoomRegistry) loadRoom(ctx context.Context, roomID string) (model.Room, error) {
	room, err := r.store.RoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Room{}, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		}
		return model.Room{}, err
	}
	return room, nil
}

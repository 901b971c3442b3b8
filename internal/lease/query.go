package lease

import (
	"room-lease-backend/internal/model"
	"room-lease-backend/internal/store"
)

// RoomFilterForRole returns the canonical room filter for a caller. Owners
// see their own rooms; tenants and anonymous callers see only available
// ones.
func RoomFilterForRole(userID string, role model.Role) store.RoomFilter {
	if role == model.RoleOwner {
		return store.RoomFilter{OwnerID: userID}
	}
	return store.RoomFilter{AvailableOnly: true}
}

// PropertyFilterForRole returns the canonical property filter for a caller.
// Owners see their own properties; everyone else sees the full listing.
func PropertyFilterForRole(userID string, role model.Role) store.PropertyFilter {
	if role == model.RoleOwner {
		return store.PropertyFilter{OwnerID: userID}
	}
	return store.PropertyFilter{}
}

// ContractFilterForRole returns the canonical contract filter for a caller,
// and whether the caller may list contracts at all. Tenants see contracts
// they hold; owners see contracts scoped to one of their rooms (the caller
// supplies the room id, the API layer verifies ownership); anonymous
// callers see nothing.
func ContractFilterForRole(userID string, role model.Role, roomID string) (store.ContractFilter, bool) {
	switch role {
	case model.RoleTenant:
		return store.ContractFilter{TenantID: userID}, true
	case model.RoleOwner:
		if roomID == "" {
			return store.ContractFilter{}, false
		}
		return store.ContractFilter{RoomID: roomID}, true
	default:
		return store.ContractFilter{}, false
	}
}

package store

import (
	"time"

	"room-lease-backend/internal/model"
)

// ContractFilter enumerates the recognized contract query fields. A zero
// field is ignored. OverlapStart/OverlapEnd select contracts whose
// half-open interval [start_date, end_date) intersects
// [OverlapStart, OverlapEnd).
type ContractFilter struct {
	TenantID     string
	RoomID       string
	Statuses     []model.LeaseStatus
	OverlapStart *time.Time
	OverlapEnd   *time.Time
	ExcludeID    string
	Limit        int
}

// RoomFilter enumerates the recognized room query fields.
type RoomFilter struct {
	OwnerID       string
	PropertyID    string
	AvailableOnly bool
	Unattached    bool
}

// PropertyFilter enumerates the recognized property query fields.
type PropertyFilter struct {
	OwnerID string
}

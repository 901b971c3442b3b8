package lease

import (
	"context"
	"time"

	"room-lease-backend/internal/model"
	"room-lease-backend/internal/store"
)

// ConflictDetector decides whether a proposed lease interval overlaps an
// existing active lease of the same tenant. It is read-only over the
// contract store.
type ConflictDetector struct {
	store store.Store
}

// NewConflictDetector creates a detector backed by the given store.
func NewConflictDetector(s store.Store) *ConflictDetector {
	return &ConflictDetector{store: s}
}

// HasConflict reports whether the tenant already holds an Active contract
// whose half-open interval [s, e) overlaps [start, end). The caller
// guarantees start < end. excludeContractID, when non-empty, removes that
// contract from consideration (used when re-validating an existing
// contract during acceptance). Pending contracts are not considered
// conflicting with each other; only acceptance is serialized.
func (d *ConflictDetector) HasConflict(ctx context.Context, tenantID string, start, end time.Time, excludeContractID string) (bool, error) {
	contracts, err := d.store.ContractsByFilter(ctx, store.ContractFilter{
		TenantID:     tenantID,
		Statuses:     []model.LeaseStatus{model.StatusActive},
		OverlapStart: &start,
		OverlapEnd:   &end,
		ExcludeID:    excludeContractID,
		Limit:        1,
	})
	if err != nil {
		return false, err
	}
	return len(contracts) > 0, nil
}

package lease

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"room-lease-backend/internal/audit"
	"room-lease-backend/internal/model"
	"room-lease-backend/internal/store"
)

// SystemActor is recorded as the modifier for automatic transitions.
const SystemActor = "SYSTEM"

// tenantLocks hands out one mutex per tenant id, so that a tenant's
// conflict check and the subsequent activate write form a critical section.
type tenantLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTenantLocks() *tenantLocks {
	return &tenantLocks{locks: make(map[string]*sync.Mutex)}
}

func (t *tenantLocks) get(tenantID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, exists := t.locks[tenantID]
	if !exists {
		l = &sync.Mutex{}
		t.locks[tenantID] = l
	}
	return l
}

// Lifecycle owns the contract state machine:
//
//	none --Create--> Pending --Accept--> Active --expire--> Terminated
//
// Status never moves backward. Writes go through the store's conditional
// status update, so two concurrent accepts on one contract cannot both
// succeed.
type Lifecycle struct {
	store    store.Store
	detector *ConflictDetector
	registry *RoomRegistry
	audit    audit.Logger
	tenants  *tenantLocks
}

// NewLifecycle wires the state machine with its collaborators.
func NewLifecycle(s store.Store, d *ConflictDetector, r *RoomRegistry, a audit.Logger) *Lifecycle {
	return &Lifecycle{
		store:    s,
		detector: d,
		registry: r,
		audit:    a,
		tenants:  newTenantLocks(),
	}
}

// Create constructs a new Pending contract for the tenant. No conflict
// check happens here: many tenants may apply for the same room, and the
// overlap invariant is enforced lazily at acceptance.
func (l *Lifecycle) Create(ctx context.Context, roomID, tenantID string, startDate, endDate time.Time) (model.Contract, error) {
	if !startDate.Before(endDate) {
		return model.Contract{}, fmt.Errorf("start date must precede end date: %w", ErrValidation)
	}
	if _, err := l.registry.loadRoom(ctx, roomID); err != nil {
		return model.Contract{}, err
	}

	contract := model.Contract{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		TenantID:  tenantID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    model.StatusPending,
	}
	if err := l.store.CreateContract(ctx, &contract); err != nil {
		return model.Contract{}, err
	}
	return contract, nil
}

// Accept promotes a Pending contract to Active on behalf of the room's
// owner. The ownership check runs before the conflict check; both must pass
// before any mutation. The status write is conditional on the stored status
// still being Pending, so the loser of a concurrent accept observes
// ErrInvalidState.
func (l *Lifecycle) Accept(ctx context.Context, contractID, actingOwnerID string) (model.Contract, error) {
	contract, err := l.store.ContractByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Contract{}, fmt.Errorf("contract %s not found: %w", contractID, ErrInvalidState)
		}
		return model.Contract{}, err
	}
	if contract.Status != model.StatusPending {
		return model.Contract{}, fmt.Errorf("contract %s is %s, not %s: %w",
			contractID, contract.Status, model.StatusPending, ErrInvalidState)
	}

	room, err := l.registry.VerifyOwnership(ctx, contract.RoomID, actingOwnerID)
	if err != nil {
		return model.Contract{}, err
	}

	// Hold the tenant lock across the conflict check and the activate write,
	// so another acceptance for the same tenant cannot commit in between.
	lock := l.tenants.get(contract.TenantID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := l.detector.HasConflict(ctx, contract.TenantID, contract.StartDate, contract.EndDate, contractID)
	if err != nil {
		return model.Contract{}, err
	}
	if conflict {
		return model.Contract{}, fmt.Errorf("tenant %s already has an active contract for these dates: %w",
			contract.TenantID, ErrConflict)
	}

	now := time.Now().UTC()
	ok, err := l.store.UpdateContractStatusIf(ctx, contractID, model.StatusPending, model.StatusActive, now, actingOwnerID)
	if err != nil {
		return model.Contract{}, err
	}
	if !ok {
		return model.Contract{}, fmt.Errorf("contract %s was modified concurrently: %w", contractID, ErrInvalidState)
	}

	if err := l.store.SetRoomStatus(ctx, room.ID, model.StatusActive); err != nil {
		log.Printf("Warning: could not mirror active status onto room %s: %v", room.ID, err)
	}

	l.audit.Record(model.AuditRecord{
		DocumentID: contract.ID,
		Collection: audit.CollectionContract,
		Action:     audit.ActionStatusUpdateActive,
		OldStatus:  string(model.StatusPending),
		NewStatus:  string(model.StatusActive),
		ActorID:    actingOwnerID,
	})

	contract.Status = model.StatusActive
	contract.StatusLastChangedDate = &now
	contract.LastModifiedBy = actingOwnerID
	return contract, nil
}

// TerminateExpiredBatch retires every Active contract whose end date is at
// or before asOf. Each contract's termination is one unit: the conditional
// status write commits first, then its audit entry is dispatched. The batch
// is idempotent; a second run over the same asOf finds nothing Active and
// terminates nothing.
func (l *Lifecycle) TerminateExpiredBatch(ctx context.Context, asOf time.Time) ([]string, error) {
	expired, err := l.store.ExpiredActiveContracts(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return nil, nil
	}

	var terminated []string
	for _, contract := range expired {
		ok, err := l.store.UpdateContractStatusIf(ctx, contract.ID, model.StatusActive, model.StatusTerminated, asOf, SystemActor)
		if err != nil {
			return terminated, err
		}
		if !ok {
			// Lost a race with another writer; the contract is no longer Active.
			continue
		}

		if err := l.store.SetRoomStatus(ctx, contract.RoomID, model.StatusTerminated); err != nil {
			log.Printf("Warning: could not mirror terminated status onto room %s: %v", contract.RoomID, err)
		}

		l.audit.Record(model.AuditRecord{
			DocumentID: contract.ID,
			Collection: audit.CollectionContract,
			Action:     audit.ActionStatusUpdateTerminated,
			OldStatus:  string(model.StatusActive),
			NewStatus:  string(model.StatusTerminated),
			ActorID:    SystemActor,
		})
		terminated = append(terminated, contract.ID)
	}
	return terminated, nil
}

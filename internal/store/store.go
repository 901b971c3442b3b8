package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"room-lease-backend/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the lease core relies on.
type Store interface {
	DB() *gorm.DB

	CreateContract(ctx context.Context, c *model.Contract) error
	ContractByID(ctx context.Context, id string) (model.Contract, error)
	ContractsByFilter(ctx context.Context, f ContractFilter) ([]model.Contract, error)
	// UpdateContractStatusIf performs a conditional status write: the update
	// commits only if the stored status still equals from. It reports whether
	// a row was written.
	UpdateContractStatusIf(ctx context.Context, id string, from, to model.LeaseStatus, at time.Time, actor string) (bool, error)
	ExpiredActiveContracts(ctx context.Context, asOf time.Time) ([]model.Contract, error)

	CreateRoom(ctx context.Context, r *model.Room) error
	RoomByID(ctx context.Context, id string) (model.Room, error)
	SaveRoom(ctx context.Context, r *model.Room) error
	DeleteRoom(ctx context.Context, id string) error
	RoomsByFilter(ctx context.Context, f RoomFilter) ([]model.Room, error)
	SetRoomStatus(ctx context.Context, id string, status model.LeaseStatus) error

	CreateProperty(ctx context.Context, p *model.Property) error
	PropertyByID(ctx context.Context, id string) (model.Property, error)
	PropertiesByFilter(ctx context.Context, f PropertyFilter) ([]model.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) CreateContract(ctx context.Context, c *model.Contract) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (s *gormStore) ContractByID(ctx context.Context, id string) (model.Contract, error) {
	var c model.Contract
	err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Contract{}, ErrNotFound
	}
	if err != nil {
		return model.Contract{}, fmt.Errorf("failed to load contract %s: %w", id, err)
	}
	return c, nil
}

func (s *gormStore) ContractsByFilter(ctx context.Context, f ContractFilter) ([]model.Contract, error) {
	q := s.db.WithContext(ctx).Model(&model.Contract{})
	if f.TenantID != "" {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.RoomID != "" {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	// Half-open interval overlap: [s, e) intersects [start, end) iff
	// s < end AND e > start.
	if f.OverlapEnd != nil {
		q = q.Where("start_date < ?", *f.OverlapEnd)
	}
	if f.OverlapStart != nil {
		q = q.Where("end_date > ?", *f.OverlapStart)
	}
	if f.ExcludeID != "" {
		q = q.Where("id <> ?", f.ExcludeID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var contracts []model.Contract
	if err := q.Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	return contracts, nil
}

func (s *gormStore) UpdateContractStatusIf(ctx context.Context, id string, from, to model.LeaseStatus, at time.Time, actor string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Contract{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":                   to,
			"status_last_changed_date": at,
			"last_modified_by":         actor,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update contract %s status: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *gormStore) ExpiredActiveContracts(ctx context.Context, asOf time.Time) ([]model.Contract, error) {
	var contracts []model.Contract
	err := s.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", model.StatusActive, asOf).
		Find(&contracts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expired contracts: %w", err)
	}
	return contracts, nil
}

func (s *gormStore) CreateRoom(ctx context.Context, r *model.Room) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *gormStore) RoomByID(ctx context.Context, id string) (model.Room, error) {
	var r model.Room
	err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Room{}, ErrNotFound
	}
	if err != nil {
		return model.Room{}, fmt.Errorf("failed to load room %s: %w", id, err)
	}
	return r, nil
}

func (s *gormStore) SaveRoom(ctx context.Context, r *model.Room) error {
	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return fmt.Errorf("failed to save room %s: %w", r.ID, err)
	}
	return nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, err)
	}
	return nil
}

func (s *gormStore) RoomsByFilter(ctx context.Context, f RoomFilter) ([]model.Room, error) {
	q := s.db.WithContext(ctx).Model(&model.Room{})
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.PropertyID != "" {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}
	if f.Unattached {
		q = q.Where("property_id IS NULL")
	}

	var rooms []model.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) SetRoomStatus(ctx context.Context, id string, status model.LeaseStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to set room %s status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) CreateProperty(ctx context.Context, p *model.Property) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (s *gormStore) PropertyByID(ctx context.Context, id string) (model.Property, error) {
	var p model.Property
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Property{}, ErrNotFound
	}
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to load property %s: %w", id, err)
	}
	return p, nil
}

func (s *gormStore) PropertiesByFilter(ctx context.Context, f PropertyFilter) ([]model.Property, error) {
	q := s.db.WithContext(ctx).Model(&model.Property{})
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	var properties []model.Property
	if err := q.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	return properties, nil
}

func (s *gormStore) DeleteProperty(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Property{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"room-lease-backend/internal/model"
)

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Property{}, &model.Room{}, &model.Contract{}, &model.AuditRecord{})
	require.NoError(t, err)
	return db
}

func TestUpdateContractStatusIf_ConditionalWrite(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)
	now := time.Now().UTC()

	// The write must be guarded by the stored status, not just the id.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contracts" SET .* WHERE id = \$[0-9]+ AND status = \$[0-9]+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := s.UpdateContractStatusIf(context.Background(), "c-1", model.StatusPending, model.StatusActive, now, "owner-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContractStatusIf_StaleStatus(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contracts" SET .* WHERE id = \$[0-9]+ AND status = \$[0-9]+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := s.UpdateContractStatusIf(context.Background(), "c-1", model.StatusPending, model.StatusActive, now, "owner-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContractStatusIf_SingleWinner(t *testing.T) {
	s := NewGormStore(newSQLiteDB(t))
	now := time.Now().UTC()

	contract := model.Contract{
		ID:        uuid.NewString(),
		RoomID:    uuid.NewString(),
		TenantID:  "tenant-1",
		StartDate: now,
		EndDate:   now.AddDate(0, 6, 0),
		Status:    model.StatusPending,
	}
	require.NoError(t, s.CreateContract(context.Background(), &contract))

	// Two writers race for the Pending->Active transition; the second sees a
	// stale stored status and loses.
	ok, err := s.UpdateContractStatusIf(context.Background(), contract.ID, model.StatusPending, model.StatusActive, now, "owner-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.UpdateContractStatusIf(context.Background(), contract.ID, model.StatusPending, model.StatusActive, now, "owner-2")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := s.ContractByID(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, stored.Status)
	assert.Equal(t, "owner-1", stored.LastModifiedBy)
}

func TestContractsByFilter(t *testing.T) {
	s := NewGormStore(newSQLiteDB(t))
	ctx := context.Background()

	mk := func(tenantID string, status model.LeaseStatus, start, end time.Time) model.Contract {
		c := model.Contract{
			ID:        uuid.NewString(),
			RoomID:    uuid.NewString(),
			TenantID:  tenantID,
			StartDate: start,
			EndDate:   end,
			Status:    status,
		}
		require.NoError(t, s.CreateContract(ctx, &c))
		return c
	}

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sep := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	active := mk("tenant-1", model.StatusActive, jan, jun)
	mk("tenant-1", model.StatusPending, jan, jun)
	mk("tenant-1", model.StatusActive, jun, sep)
	mk("tenant-2", model.StatusActive, jan, jun)

	overlapStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	overlapEnd := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := s.ContractsByFilter(ctx, ContractFilter{
		TenantID:     "tenant-1",
		Statuses:     []model.LeaseStatus{model.StatusActive},
		OverlapStart: &overlapStart,
		OverlapEnd:   &overlapEnd,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)

	got, err = s.ContractsByFilter(ctx, ContractFilter{
		TenantID:     "tenant-1",
		Statuses:     []model.LeaseStatus{model.StatusActive},
		OverlapStart: &overlapStart,
		OverlapEnd:   &overlapEnd,
		ExcludeID:    active.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpiredActiveContracts(t *testing.T) {
	s := NewGormStore(newSQLiteDB(t))
	ctx := context.Background()

	asOf := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	expired := model.Contract{
		ID: uuid.NewString(), RoomID: "r1", TenantID: "t1",
		StartDate: jan, EndDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status: model.StatusActive,
	}
	boundary := model.Contract{
		ID: uuid.NewString(), RoomID: "r2", TenantID: "t2",
		StartDate: jan, EndDate: asOf,
		Status: model.StatusActive,
	}
	future := model.Contract{
		ID: uuid.NewString(), RoomID: "r3", TenantID: "t3",
		StartDate: jan, EndDate: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		Status: model.StatusActive,
	}
	pending := model.Contract{
		ID: uuid.NewString(), RoomID: "r4", TenantID: "t4",
		StartDate: jan, EndDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status: model.StatusPending,
	}
	for _, c := range []*model.Contract{&expired, &boundary, &future, &pending} {
		require.NoError(t, s.CreateContract(ctx, c))
	}

	got, err := s.ExpiredActiveContracts(ctx, asOf)
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	// end_date <= asOf is inclusive at the boundary.
	assert.ElementsMatch(t, []string{expired.ID, boundary.ID}, ids)
}

package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"room-lease-backend/internal/model"
)

// flakySink fails a configured number of appends before succeeding.
type flakySink struct {
	mu        sync.Mutex
	failures  int
	persisted []model.AuditRecord
	appended  chan struct{}
}

func (s *flakySink) Append(_ context.Context, entry model.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("sink unavailable")
	}
	s.persisted = append(s.persisted, entry)
	if s.appended != nil {
		s.appended <- struct{}{}
	}
	return nil
}

func TestRecorder_Record(t *testing.T) {
	r := NewRecorder(1, &flakySink{})

	r.Record(model.AuditRecord{DocumentID: "c-1"})

	select {
	case entry := <-r.Jobs():
		assert.Equal(t, "c-1", entry.DocumentID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for entry to be dispatched")
	}
}

func TestRecorder_AppendsEntry(t *testing.T) {
	sink := &flakySink{appended: make(chan struct{}, 1)}
	r := NewRecorder(1, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	r.Record(model.AuditRecord{
		DocumentID: "c-1",
		Collection: CollectionContract,
		Action:     ActionStatusUpdateTerminated,
		OldStatus:  string(model.StatusActive),
		NewStatus:  string(model.StatusTerminated),
		ActorID:    "SYSTEM",
	})

	select {
	case <-sink.appended:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for entry to be persisted")
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.persisted, 1)
	assert.Equal(t, ActionStatusUpdateTerminated, sink.persisted[0].Action)
}

func TestRecorder_RetriesFailedAppend(t *testing.T) {
	// Two failures, then success: the entry must still land exactly once.
	sink := &flakySink{failures: 2, appended: make(chan struct{}, 1)}
	r := NewRecorder(1, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	r.Record(model.AuditRecord{DocumentID: "c-1", Collection: CollectionContract})

	select {
	case <-sink.appended:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for retried append")
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Len(t, sink.persisted, 1)
}

func TestGormSink_Append(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.AuditRecord{}))

	sink := NewGormSink(db)
	err = sink.Append(context.Background(), model.AuditRecord{
		DocumentID: "c-1",
		Collection: CollectionContract,
		Action:     ActionStatusUpdateActive,
		OldStatus:  string(model.StatusPending),
		NewStatus:  string(model.StatusActive),
		ActorID:    "owner-1",
	})
	require.NoError(t, err)

	var stored []model.AuditRecord
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "c-1", stored[0].DocumentID)
	assert.Equal(t, ActionStatusUpdateActive, stored[0].Action)
	assert.WithinDuration(t, time.Now(), stored[0].CreatedAt, 5*time.Second)
}

package audit

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"room-lease-backend/internal/model"
)

// Audit actions and collections recorded by the lease core.
const (
	ActionStatusUpdateActive     = "STATUS_UPDATE_ACTIVE"
	ActionStatusUpdateTerminated = "STATUS_UPDATE_TERMINATED"

	CollectionContract = "Contract"
)

// Logger receives state-change records from the lease core. Implementations
// must treat entries as append-only.
type Logger interface {
	Record(entry model.AuditRecord)
}

// Sink persists a single audit record.
type Sink interface {
	Append(ctx context.Context, entry model.AuditRecord) error
}

// GormSink is the database-backed Sink.
type GormSink struct {
	db *gorm.DB
}

// NewGormSink creates a Sink writing to the audit_records table.
func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

// Append inserts one audit record.
func (s *GormSink) Append(ctx context.Context, entry model.AuditRecord) error {
	return s.db.WithContext(ctx).Create(&entry).Error
}

// Recorder manages a pool of workers draining audit entries into a Sink.
// Emission is at-least-once: a failed append is retried, and exhaustion is
// logged rather than surfaced, since transitions have already committed by
// the time their entries are dispatched.
type Recorder struct {
	size       int
	jobs       chan model.AuditRecord
	sink       Sink
	maxRetries int
}

// NewRecorder creates a recorder with the given worker count.
func NewRecorder(size int, sink Sink) *Recorder {
	return &Recorder{
		size:       size,
		jobs:       make(chan model.AuditRecord, size*8),
		sink:       sink,
		maxRetries: 3,
	}
}

// Start launches the worker goroutines.
func (r *Recorder) Start(ctx context.Context) {
	for i := 0; i < r.size; i++ {
		go r.worker(ctx, i)
	}
}

// Record dispatches an entry to the worker pool.
func (r *Recorder) Record(entry model.AuditRecord) {
	r.jobs <- entry
}

// Jobs returns the jobs channel for testing.
func (r *Recorder) Jobs() chan model.AuditRecord {
	return r.jobs
}

func (r *Recorder) worker(ctx context.Context, id int) {
	for {
		select {
		case entry := <-r.jobs:
			r.append(ctx, id, entry)
		case <-ctx.Done():
			log.Printf("audit worker %d shutting down", id)
			return
		}
	}
}

func (r *Recorder) append(ctx context.Context, id int, entry model.AuditRecord) {
	var err error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err = r.sink.Append(ctx, entry); err == nil {
			return
		}
		select {
		case <-time.After(time.Duration(attempt+1) * 100 * time.Millisecond):
		case <-ctx.Done():
			return
		}
	}
	log.Printf("audit worker %d dropped entry for %s %s after %d attempts: %v",
		id, entry.Collection, entry.DocumentID, r.maxRetries, err)
}

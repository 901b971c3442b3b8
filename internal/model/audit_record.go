package model

import "time"

// AuditRecord is an append-only log of a single status transition.
// Records are never mutated once written.
type AuditRecord struct {
	ID         int64  `gorm:"autoIncrement;primaryKey"`
	DocumentID string `gorm:"size:36;not null;index"`
	Collection string `gorm:"size:64;not null"`
	Action     string `gorm:"size:64;not null"`
	OldStatus  string `gorm:"size:16"`
	NewStatus  string `gorm:"size:16"`
	ActorID    string `gorm:"size:64;not null"`
	CreatedAt  time.Time
}

package model

import "time"

// LeaseStatus is the lifecycle state shared by contracts and rooms.
type LeaseStatus string

const (
	StatusFree       LeaseStatus = "Free"
	StatusPending    LeaseStatus = "Pending"
	StatusActive     LeaseStatus = "Active"
	StatusDisabled   LeaseStatus = "Disabled"
	StatusTerminated LeaseStatus = "Terminated"
)

// Contract represents a proposed or binding lease of one room by one tenant.
// The interval [StartDate, EndDate) is half-open.
type Contract struct {
	ID                    string      `gorm:"primaryKey;size:36"`
	RoomID                string      `gorm:"size:36;index;not null"`
	TenantID              string      `gorm:"size:36;index;not null"`
	StartDate             time.Time   `gorm:"not null"`
	EndDate               time.Time   `gorm:"not null;index"`
	Status                LeaseStatus `gorm:"size:16;not null;index"`
	StatusLastChangedDate *time.Time
	LastModifiedBy        string `gorm:"size:64"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

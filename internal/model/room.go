package model

import "time"

// Room is a leasable unit, exclusively owned by one user. PropertyID is
// non-null only while the room is attached to a property.
type Room struct {
	ID          string  `gorm:"primaryKey;size:36"`
	OwnerID     string  `gorm:"size:36;index;not null"`
	PropertyID  *string `gorm:"size:36;index"`
	Name        string  `gorm:"size:256;not null"`
	Description string  `gorm:"type:text"`
	Surface     float64
	Price       float64
	Status      LeaseStatus `gorm:"size:16;not null;default:Free"`
	IsAvailable bool        `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

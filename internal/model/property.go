package model

import "time"

// Property aggregates rooms under one owner. It is a structural container
// and takes no part in the contract state machine.
type Property struct {
	ID           string `gorm:"primaryKey;size:36"`
	OwnerID      string `gorm:"size:36;index;not null"`
	Name         string `gorm:"size:256;not null"`
	Description  string `gorm:"type:text"`
	Address      string `gorm:"size:512;not null"`
	SurfaceTotal float64
	Price        float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	Rooms []Room `gorm:"foreignKey:PropertyID"`
}

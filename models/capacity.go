package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CapacityCounter is the committed-occupancy row for one hostel on one
// stay date. All reads and writes go through the capacity ledger; callers
// never recompute occupancy by scanning reservations.
type CapacityCounter struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	HostelID uint           `gorm:"column:hostel_id;uniqueIndex:idx_capacity_day;not null" json:"hostel_id"`
	StayDate datatypes.Date `gorm:"column:stay_date;uniqueIndex:idx_capacity_day;not null" json:"stay_date"`

	CommittedMen   int `gorm:"column:committed_men;not null;default:0" json:"committed_men"`
	CommittedWomen int `gorm:"column:committed_women;not null;default:0" json:"committed_women"`
}

// CapacityCommitment is the handle returned by a successful reserve. It
// records exactly what was added to the counters so a release can subtract
// the same amounts; the Released flag makes release idempotent.
type CapacityCommitment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HostelID uint           `gorm:"column:hostel_id;index;not null" json:"hostel_id"`
	StayDate datatypes.Date `gorm:"column:stay_date;not null" json:"stay_date"`

	Men   int `gorm:"column:men;not null;default:0" json:"men"`
	Women int `gorm:"column:women;not null;default:0" json:"women"`

	// Set once the owning lodging reservation exists.
	ReservationID *uint `gorm:"column:reservation_id;index" json:"reservation_id,omitempty"`

	Released bool `gorm:"column:released;default:false" json:"released"`
}

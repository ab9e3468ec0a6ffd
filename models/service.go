package models

import (
	"gorm.io/gorm"
)

// Service is a bookable offering from the network catalog (showers,
// laundry slots, counselling...). Bound to hostels through HostelService.
type Service struct {
	gorm.Model

	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null;default:0"`

	// Default (and maximum) duration of one booking, in minutes.
	MaxTimeMinutes int `json:"maxTimeMinutes" gorm:"column:max_time_minutes;not null"`

	NeedsApproval   bool            `json:"needsApproval" gorm:"column:needs_approval;default:false"`
	ReservationType ReservationType `json:"reservationType" gorm:"column:reservation_type;size:32"`
	IsActive        bool            `json:"isActive" gorm:"column:is_active;default:true"`
}

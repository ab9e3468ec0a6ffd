package models

import (
	"time"

	"gorm.io/gorm"
)

type ServiceReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID          uint `gorm:"index;column:user_id;not null" json:"user_id"`
	HostelServiceID uint `gorm:"index;column:hostel_service_id;not null" json:"hostel_service_id"`

	ReferenceCode string          `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Type          ReservationType `gorm:"column:type;size:32;not null" json:"type"`
	MenQuantity   int             `gorm:"column:men_quantity;not null;default:0" json:"men_quantity"`
	WomenQuantity int             `gorm:"column:women_quantity;not null;default:0" json:"women_quantity"`

	// UTC instant the service starts; normalized by the API boundary.
	DatetimeReserved time.Time `gorm:"column:datetime_reserved;index" json:"datetime_reserved"`

	// Copied from the bound Service's MaxTimeMinutes at creation unless
	// the caller overrides with a shorter slot.
	DurationMinutes int `gorm:"column:duration_minutes;not null" json:"duration_minutes"`

	Status ServiceStatus `gorm:"column:status;size:32;index" json:"status"`

	User          User          `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	HostelService HostelService `gorm:"foreignKey:HostelServiceID;references:ID" json:"hostel_service,omitempty"`
}

// EndsAt is the reservation end instant.
func (r *ServiceReservation) EndsAt() time.Time {
	return r.DatetimeReserved.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

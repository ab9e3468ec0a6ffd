package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LodgingReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HostelID uint `gorm:"index;column:hostel_id;not null" json:"hostel_id"`
	UserID   uint `gorm:"index;column:user_id;not null" json:"user_id"`

	ReferenceCode string          `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Type          ReservationType `gorm:"column:type;size:32;not null" json:"type"`
	MenQuantity   int             `gorm:"column:men_quantity;not null;default:0" json:"men_quantity"`
	WomenQuantity int             `gorm:"column:women_quantity;not null;default:0" json:"women_quantity"`

	// Calendar date only; no time component.
	ArrivalDate datatypes.Date `gorm:"column:arrival_date;index" json:"arrival_date"`

	Status LodgingStatus `gorm:"column:status;size:32;index" json:"status"`

	// Draft list of accompanying party members for group reservations,
	// kept as staff entered it. Never interpreted by the core.
	PartyMembers datatypes.JSON `gorm:"column:party_members" json:"partyMembers,omitempty"`

	Hostel Hostel `gorm:"foreignKey:HostelID;references:ID" json:"hostel,omitempty"`
	User   User   `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

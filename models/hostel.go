package models

import (
	"gorm.io/gorm"
)

type Hostel struct {
	gorm.Model

	Name    string `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Address string `json:"address" gorm:"type:text"`
	Phone   string `json:"phone" gorm:"size:50"`

	// Fixed upper bounds per gender. Committed occupancy on any date must
	// never exceed them; only administrative edits change them.
	MenCapacity   int `json:"menCapacity" gorm:"column:men_capacity;not null;default:0"`
	WomenCapacity int `json:"womenCapacity" gorm:"column:women_capacity;not null;default:0"`

	LodgingReservations []LodgingReservation `gorm:"foreignKey:HostelID" json:"-"`
	HostelServices      []HostelService      `gorm:"foreignKey:HostelID" json:"-"`
}

func (h *Hostel) CapacityFor(g Gender) int {
	if g == GenderFemale {
		return h.WomenCapacity
	}
	return h.MenCapacity
}

package models

import (
	"gorm.io/gorm"
)

// Time-of-day layout used by schedule windows.
const TimeOfDayFormat = "15:04"

// ServiceSchedule is a weekly recurring delivery window. The window
// applies uniformly to every day of the week; DayOfWeek is retained for
// display and bookkeeping and is never consulted when checking a booking.
type ServiceSchedule struct {
	gorm.Model

	DayOfWeek int `json:"dayOfWeek" gorm:"column:day_of_week;not null;default:0"`

	// Time of day in "15:04" format. StartTime must sort before EndTime;
	// windows crossing midnight are not supported.
	StartTime string `json:"startTime" gorm:"column:start_time;size:5;not null"`
	EndTime   string `json:"endTime" gorm:"column:end_time;size:5;not null"`

	IsAvailable bool `json:"isAvailable" gorm:"column:is_available;default:true"`
}

// HostelService binds one Service to one Hostel under one schedule.
type HostelService struct {
	gorm.Model

	HostelID   uint `gorm:"index;column:hostel_id;not null" json:"hostel_id"`
	ServiceID  uint `gorm:"index;column:service_id;not null" json:"service_id"`
	ScheduleID uint `gorm:"index;column:schedule_id;not null" json:"schedule_id"`

	IsActive bool `json:"isActive" gorm:"column:is_active;default:true"`

	Hostel   Hostel          `gorm:"foreignKey:HostelID;references:ID" json:"hostel,omitempty"`
	Service  Service         `gorm:"foreignKey:ServiceID;references:ID" json:"service,omitempty"`
	Schedule ServiceSchedule `gorm:"foreignKey:ScheduleID;references:ID" json:"schedule,omitempty"`

	ServiceReservations []ServiceReservation `gorm:"foreignKey:HostelServiceID" json:"-"`
}

package models

import (
	"gorm.io/gorm"
)

// User is a registered beneficiary of the shelter network, the subject of
// lodging and service reservations. Gender is fixed at registration.
type User struct {
	gorm.Model

	FullName string `json:"fullName" gorm:"size:255;not null"`
	Gender   Gender `json:"gender" gorm:"size:16;not null"`
	Phone    string `json:"phone" gorm:"size:50"`
	Email    string `json:"email" gorm:"size:150"`
}

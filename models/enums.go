package models

// Gender of a registered user. Fixed at registration; lodging quantities
// must line up with it for individual reservations.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ReservationType distinguishes a single-person reservation from a group one.
type ReservationType string

const (
	ReservationIndividual ReservationType = "individual"
	ReservationGroup      ReservationType = "group"
)

func (t ReservationType) Valid() bool {
	return t == ReservationIndividual || t == ReservationGroup
}

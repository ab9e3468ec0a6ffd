package services

import (
	"shelter-backend/models"
)

// ValidateSizing enforces the shared party-size and gender-consistency
// rules for both reservation kinds. Pure; both machines call it before
// touching any resource.
//
// individual: men+women must be exactly 1, and when the reserving user's
// gender is known the single slot must be in that gender's column.
// group: men+women must be at least 2.
func ValidateSizing(resType models.ReservationType, menQty, womenQty int, subjectGender *models.Gender) error {
	if menQty < 0 {
		return domainErrf(KindInvalidPartySize, "men_quantity", "quantity must not be negative, got %d", menQty)
	}
	if womenQty < 0 {
		return domainErrf(KindInvalidPartySize, "women_quantity", "quantity must not be negative, got %d", womenQty)
	}

	total := menQty + womenQty

	switch resType {
	case models.ReservationIndividual:
		if total != 1 {
			return domainErrf(KindInvalidPartySize, "type",
				"individual reservation must have exactly one occupant, got %d", total)
		}
		if subjectGender != nil {
			switch *subjectGender {
			case models.GenderMale:
				if menQty != 1 {
					return domainErrf(KindInvalidPartySize, "men_quantity",
						"individual reservation for a male user must set men_quantity=1")
				}
			case models.GenderFemale:
				if womenQty != 1 {
					return domainErrf(KindInvalidPartySize, "women_quantity",
						"individual reservation for a female user must set women_quantity=1")
				}
			default:
				return domainErrf(KindInvalidPartySize, "gender", "unknown gender %q", *subjectGender)
			}
		}
	case models.ReservationGroup:
		if total < 2 {
			return domainErrf(KindInvalidPartySize, "type",
				"group reservation must have at least two occupants, got %d", total)
		}
	default:
		return domainErrf(KindInvalidPartySize, "type", "unknown reservation type %q", resType)
	}

	return nil
}

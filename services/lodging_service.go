// services/lodging_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shelter-backend/models"
	"shelter-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LodgingService drives the lodging reservation lifecycle. Capacity is
// enforced through the ledger at creation; transitions follow the status
// table in models and release capacity when a reservation dies.
type LodgingService struct {
	DB     *gorm.DB
	Ledger *CapacityLedger

	// When set, checking out releases the stay's capacity commitment.
	// Default keeps the beds counted as occupied through checkout and
	// releases only on cancellation/rejection.
	ReleaseOnCheckout bool
}

func NewLodgingService(db *gorm.DB, ledger *CapacityLedger) *LodgingService {
	return &LodgingService{
		DB:                db,
		Ledger:            ledger,
		ReleaseOnCheckout: utils.EnvBool("RELEASE_CAPACITY_ON_CHECKOUT", false),
	}
}

// Create validates sizing, commits capacity and persists the reservation
// in pending, all-or-nothing: a capacity failure creates nothing, and a
// failed insert hands the commitment straight back.
func (s *LodgingService) Create(
	ctx context.Context,
	hostelID, userID uint,
	resType models.ReservationType,
	menQty, womenQty int,
	arrivalDate time.Time,
	partyMembers datatypes.JSON,
) (*models.LodgingReservation, error) {

	var hostel models.Hostel
	if err := s.DB.First(&hostel, hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrf(KindNotFound, "hostel_id", "hostel %d not found", hostelID)
		}
		return nil, fmt.Errorf("db error checking hostel %d: %w", hostelID, err)
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrf(KindNotFound, "user_id", "user %d not found", userID)
		}
		return nil, fmt.Errorf("db error checking user %d: %w", userID, err)
	}

	if err := ValidateSizing(resType, menQty, womenQty, &user.Gender); err != nil {
		return nil, err
	}

	commitment, err := s.Ledger.TryReserve(ctx, &hostel, arrivalDate, menQty, womenQty)
	if err != nil {
		return nil, err
	}

	day := normalizeDay(arrivalDate)
	reservation := models.LodgingReservation{
		HostelID:      hostel.ID,
		UserID:        user.ID,
		ReferenceCode: utils.NewReferenceCode("LR"),
		Type:          resType,
		MenQuantity:   menQty,
		WomenQuantity: womenQty,
		ArrivalDate:   datatypes.Date(day),
		Status:        models.LodgingPending,
		PartyMembers:  partyMembers,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create lodging reservation: %w", err)
		}
		if err := tx.Model(&models.CapacityCommitment{}).
			Where("id = ?", commitment.ID).
			Update("reservation_id", reservation.ID).Error; err != nil {
			return fmt.Errorf("failed to attach commitment: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if relErr := s.Ledger.Release(ctx, commitment.ID); relErr != nil {
			log.Printf("warning: failed to release commitment %d after create failure: %v", commitment.ID, relErr)
		}
		return nil, txErr
	}

	return &reservation, nil
}

// Transition applies a status change from the transition table.
// cancelled/rejected hand the stay's capacity back; checked_in and
// checked_out leave the ledger untouched unless ReleaseOnCheckout is set.
func (s *LodgingService) Transition(ctx context.Context, reservationID uint, target models.LodgingStatus) (*models.LodgingReservation, error) {
	if !target.Valid() {
		return nil, domainErrf(KindInvalidTransition, "status", "unknown status %q", target)
	}

	reservation, err := s.GetByID(reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(target) {
		return nil, domainErrf(KindInvalidTransition, "status",
			"cannot transition lodging reservation %d from %q to %q",
			reservationID, reservation.Status, target)
	}

	releases := target == models.LodgingCancelled || target == models.LodgingRejected ||
		(target == models.LodgingCheckedOut && s.ReleaseOnCheckout)
	if releases {
		if err := s.Ledger.ReleaseByReservation(ctx, reservationID); err != nil {
			return nil, err
		}
	}

	if err := s.DB.Model(reservation).Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	reservation.Status = target
	return reservation, nil
}

// Delete removes a reservation that already reached a terminal status.
// Active reservations must be cancelled instead so capacity is handed
// back through the ledger first.
func (s *LodgingService) Delete(ctx context.Context, reservationID uint) error {
	reservation, err := s.GetByID(reservationID)
	if err != nil {
		return err
	}

	if !reservation.Status.IsTerminal() {
		return domainErrf(KindIllegalDelete, "status",
			"lodging reservation %d is still %q; cancel it before deleting",
			reservationID, reservation.Status)
	}

	if err := s.DB.Delete(reservation).Error; err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

// AvailableCapacity answers how many men and women the hostel can still
// admit on the given date.
func (s *LodgingService) AvailableCapacity(hostelID uint, date time.Time) (int, int, error) {
	var hostel models.Hostel
	if err := s.DB.First(&hostel, hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, domainErrf(KindNotFound, "hostel_id", "hostel %d not found", hostelID)
		}
		return 0, 0, fmt.Errorf("db error checking hostel %d: %w", hostelID, err)
	}
	return s.Ledger.Available(&hostel, date)
}

func (s *LodgingService) GetByID(reservationID uint) (*models.LodgingReservation, error) {
	var reservation models.LodgingReservation
	if err := s.DB.Preload("Hostel").Preload("User").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrf(KindNotFound, "reservation_id", "lodging reservation %d not found", reservationID)
		}
		return nil, fmt.Errorf("failed to retrieve lodging reservation: %w", err)
	}
	return &reservation, nil
}

func (s *LodgingService) GetAllWithRelations() ([]models.LodgingReservation, error) {
	var list []models.LodgingReservation
	if err := s.DB.
		Preload("Hostel").
		Preload("User").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve lodging reservations: %w", err)
	}
	return list, nil
}

// HasOpenReservations reports whether the hostel still owns lodging
// reservations in a non-terminal status. Hostel deletion is refused while
// it does.
func (s *LodgingService) HasOpenReservations(hostelID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.LodgingReservation{}).
		Where("hostel_id = ? AND status IN ?", hostelID, models.OpenLodgingStatuses).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count open reservations: %w", err)
	}
	return count > 0, nil
}

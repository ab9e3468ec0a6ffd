// services/service_reservation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shelter-backend/models"
	"shelter-backend/utils"

	"gorm.io/gorm"
)

// ServiceReservationService drives the service booking lifecycle. A
// booking must fall inside its schedule's window and land on an active
// schedule and hostel-service binding before it is persisted.
type ServiceReservationService struct {
	DB *gorm.DB
}

func NewServiceReservationService(db *gorm.DB) *ServiceReservationService {
	return &ServiceReservationService{DB: db}
}

// Create validates sizing and booking-time legality and persists the
// reservation in pending. Services flagged needs_approval start in
// pending like any other; approval is simply staff confirming.
//
// durationOverride <= 0 means "use the service's MaxTimeMinutes".
func (s *ServiceReservationService) Create(
	ctx context.Context,
	userID, hostelServiceID uint,
	resType models.ReservationType,
	menQty, womenQty int,
	datetimeReserved time.Time,
	durationOverride int,
) (*models.ServiceReservation, error) {

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrf(KindNotFound, "user_id", "user %d not found", userID)
		}
		return nil, fmt.Errorf("db error checking user %d: %w", userID, err)
	}

	var binding models.HostelService
	if err := s.DB.
		Preload("Service").
		Preload("Schedule").
		First(&binding, hostelServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrf(KindNotFound, "hostel_service_id", "hostel service %d not found", hostelServiceID)
		}
		return nil, fmt.Errorf("db error checking hostel service %d: %w", hostelServiceID, err)
	}

	if err := ValidateSizing(resType, menQty, womenQty, &user.Gender); err != nil {
		return nil, err
	}

	if !binding.IsActive {
		return nil, domainErrf(KindInvalidSchedule, "hostel_service_id",
			"hostel service %d is inactive", hostelServiceID)
	}
	if !binding.Service.IsActive {
		return nil, domainErrf(KindInvalidSchedule, "service_id",
			"service %q is inactive", binding.Service.Name)
	}

	duration := durationOverride
	if duration <= 0 {
		duration = binding.Service.MaxTimeMinutes
	}
	if binding.Service.MaxTimeMinutes > 0 && duration > binding.Service.MaxTimeMinutes {
		return nil, domainErrf(KindInvalidSchedule, "duration_minutes",
			"duration %d exceeds the service maximum of %d minutes",
			duration, binding.Service.MaxTimeMinutes)
	}

	at := datetimeReserved.UTC()
	ok, err := WithinWindow(&binding.Schedule, at, duration)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrf(KindInvalidSchedule, "datetime_reserved",
			"%s + %d min does not fit the %s-%s window",
			at.Format("15:04"), duration, binding.Schedule.StartTime, binding.Schedule.EndTime)
	}

	reservation := models.ServiceReservation{
		UserID:           user.ID,
		HostelServiceID:  binding.ID,
		ReferenceCode:    utils.NewReferenceCode("SR"),
		Type:             resType,
		MenQuantity:      menQty,
		WomenQuantity:    womenQty,
		DatetimeReserved: at,
		DurationMinutes:  duration,
		Status:           models.ServicePending,
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return nil, fmt.Errorf("failed to create service reservation: %w", err)
	}
	return &reservation, nil
}

// Transition applies a status change from the transition table; anything
// not in the table is rejected.
func (s *ServiceReservationService) Transition(ctx context.Context, reservationID uint, target models.ServiceStatus) (*models.ServiceReservation, error) {
	if !target.Valid() {
		return nil, domainErrf(KindInvalidTransition, "status", "unknown status %q", target)
	}

	reservation, err := s.GetByID(reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(target) {
		return nil, domainErrf(KindInvalidTransition, "status",
			"cannot transition service reservation %d from %q to %q",
			reservationID, reservation.Status, target)
	}

	if err := s.DB.Model(reservation).Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	reservation.Status = target
	return reservation, nil
}

// IsExpired reports whether the reservation's slot already ended while
// the booking is still pending or confirmed. Informational only: nothing
// in this service ever auto-transitions an expired reservation.
func IsExpired(r *models.ServiceReservation, asOf time.Time) bool {
	if r.Status != models.ServicePending && r.Status != models.ServiceConfirmed {
		return false
	}
	return r.EndsAt().Before(asOf)
}

// ExpiredReservations lists pending/confirmed reservations whose slot
// ended before asOf. Read-only.
func (s *ServiceReservationService) ExpiredReservations(asOf time.Time) ([]models.ServiceReservation, error) {
	var candidates []models.ServiceReservation
	if err := s.DB.
		Where("status IN ? AND datetime_reserved < ?",
			[]models.ServiceStatus{models.ServicePending, models.ServiceConfirmed}, asOf).
		Order("datetime_reserved ASC").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to query expired reservations: %w", err)
	}

	// end instant depends on per-row duration, so finish the filter here
	expired := make([]models.ServiceReservation, 0, len(candidates))
	for i := range candidates {
		if IsExpired(&candidates[i], asOf) {
			expired = append(expired, candidates[i])
		}
	}
	return expired, nil
}

func (s *ServiceReservationService) GetByID(reservationID uint) (*models.ServiceReservation, error) {
	var reservation models.ServiceReservation
	if err := s.DB.
		Preload("User").
		Preload("HostelService").
		Preload("HostelService.Service").
		Preload("HostelService.Schedule").
		First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrf(KindNotFound, "reservation_id", "service reservation %d not found", reservationID)
		}
		return nil, fmt.Errorf("failed to retrieve service reservation: %w", err)
	}
	return &reservation, nil
}

func (s *ServiceReservationService) GetAllWithRelations() ([]models.ServiceReservation, error) {
	var list []models.ServiceReservation
	if err := s.DB.
		Preload("User").
		Preload("HostelService").
		Preload("HostelService.Service").
		Preload("HostelService.Schedule").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve service reservations: %w", err)
	}
	return list, nil
}

// HasOpenReservations reports whether any hostel-service of the hostel
// still has a non-terminal booking.
func (s *ServiceReservationService) HasOpenReservations(hostelID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.ServiceReservation{}).
		Joins("JOIN hostel_services ON hostel_services.id = service_reservations.hostel_service_id").
		Where("hostel_services.hostel_id = ? AND service_reservations.status IN ?",
			hostelID, models.OpenServiceStatuses).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count open service reservations: %w", err)
	}
	return count > 0, nil
}

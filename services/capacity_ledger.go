// services/capacity_ledger.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shelter-backend/models"
	"shelter-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CapacityLedger owns the committed-occupancy counters per
// (hostel, date, gender). Check-and-increment runs as one atomic step per
// (hostel, date) key: a per-key lock with a short acquisition timeout
// around a database transaction, so two concurrent reserves for the same
// hostel/date can never both succeed past capacity.
type CapacityLedger struct {
	DB *gorm.DB

	locks       *keyedLock
	LockTimeout time.Duration
}

const defaultLockTimeout = 2 * time.Second

func NewCapacityLedger(db *gorm.DB) *CapacityLedger {
	return &CapacityLedger{
		DB:          db,
		locks:       newKeyedLock(),
		LockTimeout: defaultLockTimeout,
	}
}

func (l *CapacityLedger) dayKey(hostelID uint, day time.Time) string {
	return fmt.Sprintf("%d/%s", hostelID, day.Format(utils.DateFormat))
}

// normalizeDay strips the time component; ledger rows are keyed by
// calendar date in UTC.
func normalizeDay(date time.Time) time.Time {
	return utils.BeginningOfDay(date.UTC())
}

func (l *CapacityLedger) counterFor(tx *gorm.DB, hostelID uint, day time.Time) (*models.CapacityCounter, error) {
	var counter models.CapacityCounter
	err := tx.
		Where("hostel_id = ? AND stay_date = ?", hostelID, datatypes.Date(day)).
		First(&counter).Error
	if err == nil {
		return &counter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load capacity counter: %w", err)
	}

	counter = models.CapacityCounter{
		HostelID: hostelID,
		StayDate: datatypes.Date(day),
	}
	if err := tx.Create(&counter).Error; err != nil {
		return nil, fmt.Errorf("failed to create capacity counter: %w", err)
	}
	return &counter, nil
}

// Available returns how many more men and women the hostel can admit on
// the given date.
func (l *CapacityLedger) Available(hostel *models.Hostel, date time.Time) (int, int, error) {
	day := normalizeDay(date)

	var counter models.CapacityCounter
	err := l.DB.
		Where("hostel_id = ? AND stay_date = ?", hostel.ID, datatypes.Date(day)).
		First(&counter).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, fmt.Errorf("failed to load capacity counter: %w", err)
	}

	menAvail := hostel.MenCapacity - counter.CommittedMen
	womenAvail := hostel.WomenCapacity - counter.CommittedWomen
	if menAvail < 0 {
		menAvail = 0
	}
	if womenAvail < 0 {
		womenAvail = 0
	}
	return menAvail, womenAvail, nil
}

// TryReserve atomically checks both genders against remaining capacity
// and commits the quantities. On failure nothing is mutated. The returned
// commitment is the handle a later Release uses.
func (l *CapacityLedger) TryReserve(ctx context.Context, hostel *models.Hostel, date time.Time, menQty, womenQty int) (*models.CapacityCommitment, error) {
	if menQty < 0 || womenQty < 0 {
		return nil, domainErrf(KindCapacityExceeded, "quantity", "quantities must not be negative")
	}

	day := normalizeDay(date)
	key := l.dayKey(hostel.ID, day)

	if err := l.locks.acquire(ctx, key, l.LockTimeout); err != nil {
		return nil, err
	}
	defer l.locks.release(key)

	var commitment models.CapacityCommitment

	txErr := l.DB.Transaction(func(tx *gorm.DB) error {
		counter, err := l.counterFor(tx, hostel.ID, day)
		if err != nil {
			return err
		}

		if menQty > hostel.MenCapacity-counter.CommittedMen {
			return domainErrf(KindCapacityExceeded, "men_quantity",
				"requested %d men but only %d available on %s",
				menQty, hostel.MenCapacity-counter.CommittedMen, day.Format(utils.DateFormat))
		}
		if womenQty > hostel.WomenCapacity-counter.CommittedWomen {
			return domainErrf(KindCapacityExceeded, "women_quantity",
				"requested %d women but only %d available on %s",
				womenQty, hostel.WomenCapacity-counter.CommittedWomen, day.Format(utils.DateFormat))
		}

		if err := tx.Model(counter).Updates(map[string]interface{}{
			"committed_men":   counter.CommittedMen + menQty,
			"committed_women": counter.CommittedWomen + womenQty,
		}).Error; err != nil {
			return fmt.Errorf("failed to update capacity counter: %w", err)
		}

		commitment = models.CapacityCommitment{
			HostelID: hostel.ID,
			StayDate: datatypes.Date(day),
			Men:      menQty,
			Women:    womenQty,
		}
		if err := tx.Create(&commitment).Error; err != nil {
			return fmt.Errorf("failed to create capacity commitment: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &commitment, nil
}

// Release hands a commitment's quantities back to the hostel's available
// capacity. Idempotent: releasing an already-released commitment is a
// no-op, not an error.
func (l *CapacityLedger) Release(ctx context.Context, commitmentID uint) error {
	var c models.CapacityCommitment
	if err := l.DB.First(&c, commitmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainErrf(KindNotFound, "commitment", "commitment %d not found", commitmentID)
		}
		return fmt.Errorf("failed to load commitment: %w", err)
	}

	day := normalizeDay(time.Time(c.StayDate))
	key := l.dayKey(c.HostelID, day)

	if err := l.locks.acquire(ctx, key, l.LockTimeout); err != nil {
		return err
	}
	defer l.locks.release(key)

	return l.DB.Transaction(func(tx *gorm.DB) error {
		// reload under the key lock; a concurrent release may have won
		if err := tx.First(&c, commitmentID).Error; err != nil {
			return fmt.Errorf("failed to reload commitment: %w", err)
		}
		if c.Released {
			return nil
		}

		counter, err := l.counterFor(tx, c.HostelID, day)
		if err != nil {
			return err
		}

		men := counter.CommittedMen - c.Men
		women := counter.CommittedWomen - c.Women
		if men < 0 {
			men = 0
		}
		if women < 0 {
			women = 0
		}

		if err := tx.Model(counter).Updates(map[string]interface{}{
			"committed_men":   men,
			"committed_women": women,
		}).Error; err != nil {
			return fmt.Errorf("failed to update capacity counter: %w", err)
		}

		if err := tx.Model(&c).Update("released", true).Error; err != nil {
			return fmt.Errorf("failed to mark commitment released: %w", err)
		}
		return nil
	})
}

// ReleaseByReservation releases whatever commitment the given lodging
// reservation holds. Reservations without a live commitment are a no-op.
func (l *CapacityLedger) ReleaseByReservation(ctx context.Context, reservationID uint) error {
	var c models.CapacityCommitment
	err := l.DB.
		Where("reservation_id = ?", reservationID).
		Order("id DESC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up commitment for reservation %d: %w", reservationID, err)
	}
	return l.Release(ctx, c.ID)
}

package services

import (
	"fmt"
	"strings"
	"testing"

	"shelter-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database for one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// one connection so every session sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Hostel{},
		&models.Service{},
		&models.ServiceSchedule{},
		&models.HostelService{},
		&models.LodgingReservation{},
		&models.ServiceReservation{},
		&models.CapacityCounter{},
		&models.CapacityCommitment{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedHostel(t *testing.T, db *gorm.DB, men, women int) *models.Hostel {
	t.Helper()
	hostel := models.Hostel{
		Name:          fmt.Sprintf("Hostel %s", strings.ReplaceAll(t.Name(), "/", " ")),
		MenCapacity:   men,
		WomenCapacity: women,
	}
	if err := db.Create(&hostel).Error; err != nil {
		t.Fatalf("failed to seed hostel: %v", err)
	}
	return &hostel
}

func seedUser(t *testing.T, db *gorm.DB, gender models.Gender) *models.User {
	t.Helper()
	user := models.User{FullName: "Test User", Gender: gender}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

type bindingOpts struct {
	startTime       string
	endTime         string
	available       bool
	bindingActive   bool
	serviceActive   bool
	maxTimeMinutes  int
	reservationType models.ReservationType
	needsApproval   bool
}

func defaultBindingOpts() bindingOpts {
	return bindingOpts{
		startTime:       "08:00",
		endTime:         "17:00",
		available:       true,
		bindingActive:   true,
		serviceActive:   true,
		maxTimeMinutes:  60,
		reservationType: models.ReservationIndividual,
	}
}

func seedBinding(t *testing.T, db *gorm.DB, hostel *models.Hostel, opts bindingOpts) *models.HostelService {
	t.Helper()

	service := models.Service{
		Name:            fmt.Sprintf("Service %s", strings.ReplaceAll(t.Name(), "/", " ")),
		MaxTimeMinutes:  opts.maxTimeMinutes,
		ReservationType: opts.reservationType,
		NeedsApproval:   opts.needsApproval,
		IsActive:        opts.serviceActive,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	// GORM skips zero-valued fields with a default tag on Create, so a
	// false flag must be written explicitly or the column stays true.
	if !opts.serviceActive {
		if err := db.Model(&service).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate seeded service: %v", err)
		}
	}

	schedule := models.ServiceSchedule{
		StartTime:   opts.startTime,
		EndTime:     opts.endTime,
		IsAvailable: opts.available,
	}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("failed to seed schedule: %v", err)
	}
	if !opts.available {
		if err := db.Model(&schedule).Update("is_available", false).Error; err != nil {
			t.Fatalf("failed to mark seeded schedule unavailable: %v", err)
		}
	}

	binding := models.HostelService{
		HostelID:   hostel.ID,
		ServiceID:  service.ID,
		ScheduleID: schedule.ID,
		IsActive:   opts.bindingActive,
	}
	if err := db.Create(&binding).Error; err != nil {
		t.Fatalf("failed to seed hostel service: %v", err)
	}
	if !opts.bindingActive {
		if err := db.Model(&binding).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate seeded hostel service: %v", err)
		}
	}
	return &binding
}

package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"shelter-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "shelter_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the bootstrap rows exist: a default staff admin
// and a starter service catalog. Safe to run repeatedly.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_BOOTSTRAP_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Network Admin",
				Username: "admin@shelter.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Services ----------------
	var svcCount int64
	DB.Model(&models.Service{}).Count(&svcCount)
	if svcCount == 0 {
		catalog := []models.Service{
			{Name: "Shower", Description: "Shower slot", MaxTimeMinutes: 30, ReservationType: models.ReservationIndividual, IsActive: true},
			{Name: "Laundry", Description: "Washer and dryer slot", MaxTimeMinutes: 90, ReservationType: models.ReservationIndividual, IsActive: true},
			{Name: "Dining Hall", Description: "Group meal sitting", MaxTimeMinutes: 60, ReservationType: models.ReservationGroup, IsActive: true},
			{Name: "Counselling", Description: "One-on-one session", MaxTimeMinutes: 45, NeedsApproval: true, ReservationType: models.ReservationIndividual, IsActive: true},
		}
		if err := DB.Create(&catalog).Error; err != nil {
			log.Printf("warning: failed to seed service catalog: %v", err)
		} else {
			log.Println("Service catalog seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
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
		return err
	}

	SeedDatabase()
	return nil
}

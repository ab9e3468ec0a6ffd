package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shelter-backend/config"
	"shelter-backend/controllers"
	"shelter-backend/models"
	"shelter-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildTestApp wires the real controllers onto an in-memory database.
func buildTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
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
		t.Fatalf("failed to migrate: %v", err)
	}

	// catalog handlers read config.DB
	config.DB = db

	ledger := services.NewCapacityLedger(db)
	lodgingService := services.NewLodgingService(db, ledger)
	serviceReservationService := services.NewServiceReservationService(db)

	router := SetupRouter(
		controllers.NewLodgingController(lodgingService),
		controllers.NewServiceReservationController(serviceReservationService),
		controllers.NewHostelController(db, lodgingService, serviceReservationService),
	)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	router, _ := buildTestApp(t)
	resp := doJSON(t, router, http.MethodGet, "/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("health = %d, want 200", resp.Code)
	}
}

func TestLodgingReservationFlow(t *testing.T) {
	router, db := buildTestApp(t)

	hostel := models.Hostel{Name: "Casa Central", MenCapacity: 2, WomenCapacity: 0}
	if err := db.Create(&hostel).Error; err != nil {
		t.Fatalf("seed hostel: %v", err)
	}
	user := models.User{FullName: "Juan Perez", Gender: models.GenderMale}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	create := func() *httptest.ResponseRecorder {
		return doJSON(t, router, http.MethodPost, "/api/lodging-reservations", map[string]interface{}{
			"hostel_id":    hostel.ID,
			"user_id":      user.ID,
			"type":         "individual",
			"men_quantity": 1,
			"arrival_date": "2026-07-01",
		})
	}

	if resp := create(); resp.Code != http.StatusCreated {
		t.Fatalf("first create = %d: %s", resp.Code, resp.Body.String())
	}
	if resp := create(); resp.Code != http.StatusCreated {
		t.Fatalf("second create = %d: %s", resp.Code, resp.Body.String())
	}

	// third booking exceeds men capacity 2
	resp := create()
	if resp.Code != http.StatusConflict {
		t.Fatalf("third create = %d, want 409: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "capacity_exceeded") {
		t.Fatalf("expected capacity_exceeded kind, got %s", resp.Body.String())
	}

	// availability is exhausted
	resp = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/hostels/%d/availability?date=2026-07-01", hostel.ID), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("availability = %d: %s", resp.Code, resp.Body.String())
	}
	var availability struct {
		Data struct {
			MenAvailable   int `json:"men_available"`
			WomenAvailable int `json:"women_available"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &availability); err != nil {
		t.Fatalf("failed to decode availability: %v", err)
	}
	if availability.Data.MenAvailable != 0 {
		t.Fatalf("men available = %d, want 0", availability.Data.MenAvailable)
	}

	// illegal transition is a conflict
	resp = doJSON(t, router, http.MethodPatch, "/api/lodging-reservations/1/status",
		map[string]string{"status": "checked_out"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("pending -> checked_out = %d, want 409: %s", resp.Code, resp.Body.String())
	}

	// cancel releases a bed
	resp = doJSON(t, router, http.MethodPatch, "/api/lodging-reservations/1/status",
		map[string]string{"status": "cancelled"})
	if resp.Code != http.StatusOK {
		t.Fatalf("cancel = %d: %s", resp.Code, resp.Body.String())
	}
	if resp := create(); resp.Code != http.StatusCreated {
		t.Fatalf("create after cancel = %d: %s", resp.Code, resp.Body.String())
	}

	// deleting the hostel is refused while reservations are open
	resp = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/hostels/%d", hostel.ID), nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("hostel delete = %d, want 409: %s", resp.Code, resp.Body.String())
	}
}

func TestServiceReservationEndpoints(t *testing.T) {
	router, db := buildTestApp(t)

	hostel := models.Hostel{Name: "Casa Norte", MenCapacity: 4, WomenCapacity: 4}
	if err := db.Create(&hostel).Error; err != nil {
		t.Fatalf("seed hostel: %v", err)
	}
	user := models.User{FullName: "Maria Lopez", Gender: models.GenderFemale}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	service := models.Service{Name: "Shower", MaxTimeMinutes: 60, ReservationType: models.ReservationIndividual, IsActive: true}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	scheduleRow := models.ServiceSchedule{StartTime: "08:00", EndTime: "17:00", IsAvailable: true}
	if err := db.Create(&scheduleRow).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	binding := models.HostelService{HostelID: hostel.ID, ServiceID: service.ID, ScheduleID: scheduleRow.ID, IsActive: true}
	if err := db.Create(&binding).Error; err != nil {
		t.Fatalf("seed binding: %v", err)
	}

	// slot past close is unprocessable
	resp := doJSON(t, router, http.MethodPost, "/api/service-reservations", map[string]interface{}{
		"user_id":           user.ID,
		"hostel_service_id": binding.ID,
		"type":              "individual",
		"women_quantity":    1,
		"datetime_reserved": "2026-07-01T16:30:00Z",
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("late slot = %d, want 422: %s", resp.Code, resp.Body.String())
	}

	// boundary slot is accepted
	resp = doJSON(t, router, http.MethodPost, "/api/service-reservations", map[string]interface{}{
		"user_id":           user.ID,
		"hostel_service_id": binding.ID,
		"type":              "individual",
		"women_quantity":    1,
		"datetime_reserved": "2026-07-01T16:00:00Z",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("boundary slot = %d, want 201: %s", resp.Code, resp.Body.String())
	}

	// the slot shows up as expired afterwards, without being mutated
	resp = doJSON(t, router, http.MethodGet, "/api/service-reservations/expired?as_of=2026-07-02T00:00:00Z", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expired query = %d: %s", resp.Code, resp.Body.String())
	}
	var expired struct {
		Data struct {
			ReservationIDs []uint `json:"reservation_ids"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &expired); err != nil {
		t.Fatalf("failed to decode expired payload: %v", err)
	}
	if len(expired.Data.ReservationIDs) != 1 {
		t.Fatalf("expected one expired reservation, got %v", expired.Data.ReservationIDs)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/service-reservations/1", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "pending") {
		t.Fatalf("reservation should still be pending: %d %s", resp.Code, resp.Body.String())
	}
}

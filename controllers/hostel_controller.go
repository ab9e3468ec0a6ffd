// controllers/hostel_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	mysql "github.com/go-sql-driver/mysql"

	"shelter-backend/models"
	"shelter-backend/services"
	"shelter-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HostelController struct {
	DB         *gorm.DB
	LodgingSvc *services.LodgingService
	ServiceSvc *services.ServiceReservationService
}

func NewHostelController(db *gorm.DB, lodgingSvc *services.LodgingService, serviceSvc *services.ServiceReservationService) *HostelController {
	return &HostelController{DB: db, LodgingSvc: lodgingSvc, ServiceSvc: serviceSvc}
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// GET /api/hostels
func (ctrl *HostelController) GetHostels(c *gin.Context) {
	var hostels []models.Hostel
	if err := ctrl.DB.Order("name ASC").Find(&hostels).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hostels)
}

// GET /api/hostels/:id
func (ctrl *HostelController) GetHostelByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var hostel models.Hostel
	if err := ctrl.DB.First(&hostel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("hostel %d not found", id))
			return
		}
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hostel)
}

// POST /api/hostels
func (ctrl *HostelController) CreateHostel(c *gin.Context) {
	var hostel models.Hostel
	if err := c.ShouldBindJSON(&hostel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if hostel.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	if hostel.MenCapacity < 0 || hostel.WomenCapacity < 0 {
		utils.JSONError(c, http.StatusBadRequest, "capacities must not be negative")
		return
	}

	if err := ctrl.DB.Create(&hostel).Error; err != nil {
		if isDuplicateEntry(err) {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("hostel %q already exists", hostel.Name))
			return
		}
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hostel)
}

// PATCH /api/hostels/:id
// Capacities are fixed upper bounds mutable only here, independent of
// the reservation flow.
func (ctrl *HostelController) UpdateHostel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var hostel models.Hostel
	if err := ctrl.DB.First(&hostel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("hostel %d not found", id))
			return
		}
		respondDomainError(c, err)
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := ctrl.DB.Model(&hostel).Updates(updateData).Error; err != nil {
		if isDuplicateEntry(err) {
			utils.JSONError(c, http.StatusConflict, "hostel name already exists")
			return
		}
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hostel)
}

// DELETE /api/hostels/:id
// Refused while the hostel owns any reservation, lodging or service, in a
// non-terminal status.
func (ctrl *HostelController) DeleteHostel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var hostel models.Hostel
	if err := ctrl.DB.First(&hostel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("hostel %d not found", id))
			return
		}
		respondDomainError(c, err)
		return
	}

	openLodging, err := ctrl.LodgingSvc.HasOpenReservations(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	openService, err := ctrl.ServiceSvc.HasOpenReservations(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if openLodging || openService {
		utils.JSONError(c, http.StatusConflict,
			fmt.Sprintf("hostel %d still has reservations in a non-terminal status", id))
		return
	}

	if err := ctrl.DB.Delete(&hostel).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// controllers/catalog_controller.go
//
// CRUD over the static catalogs the reservation core depends on:
// services, schedules, hostel-service bindings and users. Thin glue;
// every rule that matters lives in the services package.
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"shelter-backend/config"
	"shelter-backend/models"
	"shelter-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ----------------------------------------------------
// Services catalog (GET/POST /api/services, ...)
// ----------------------------------------------------

func GetServices(c *gin.Context) {
	var list []models.Service
	config.DB.Order("name ASC").Find(&list)
	utils.JSONSuccess(c, http.StatusOK, list)
}

func CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if svc.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	if svc.MaxTimeMinutes <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "maxTimeMinutes must be positive")
		return
	}
	if !svc.ReservationType.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "reservationType must be individual or group")
		return
	}

	if err := config.DB.Create(&svc).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, svc)
}

func UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var svc models.Service
	if err := config.DB.First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("service %d not found", id))
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

	if err := config.DB.Model(&svc).Updates(updateData).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Service{}, id).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// ----------------------------------------------------
// Service schedules (GET/POST /api/schedules, ...)
// ----------------------------------------------------

func GetSchedules(c *gin.Context) {
	var list []models.ServiceSchedule
	config.DB.Order("start_time ASC").Find(&list)
	utils.JSONSuccess(c, http.StatusOK, list)
}

func CreateSchedule(c *gin.Context) {
	var schedule models.ServiceSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if schedule.DayOfWeek < 0 || schedule.DayOfWeek > 6 {
		utils.JSONError(c, http.StatusBadRequest, "dayOfWeek must be 0-6")
		return
	}

	start, err := time.Parse(models.TimeOfDayFormat, schedule.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "startTime must be HH:MM")
		return
	}
	end, err := time.Parse(models.TimeOfDayFormat, schedule.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "endTime must be HH:MM")
		return
	}
	if !start.Before(end) {
		utils.JSONError(c, http.StatusBadRequest, "startTime must be before endTime")
		return
	}

	if err := config.DB.Create(&schedule).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, schedule)
}

func DeleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var count int64
	config.DB.Model(&models.HostelService{}).Where("schedule_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONError(c, http.StatusConflict,
			fmt.Sprintf("schedule %d is still bound to %d hostel service(s)", id, count))
		return
	}
	if err := config.DB.Delete(&models.ServiceSchedule{}, id).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// ----------------------------------------------------
// Hostel-service bindings (GET/POST /api/hostel-services, ...)
// ----------------------------------------------------

func GetHostelServices(c *gin.Context) {
	var list []models.HostelService
	config.DB.
		Preload("Hostel").
		Preload("Service").
		Preload("Schedule").
		Find(&list)
	utils.JSONSuccess(c, http.StatusOK, list)
}

func CreateHostelService(c *gin.Context) {
	var binding models.HostelService
	if err := c.ShouldBindJSON(&binding); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	// validate all three FKs up front so the DB never sees a 0 FK
	if err := config.DB.First(&models.Hostel{}, binding.HostelID).Error; err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("invalid hostel_id %d", binding.HostelID))
		return
	}
	if err := config.DB.First(&models.Service{}, binding.ServiceID).Error; err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("invalid service_id %d", binding.ServiceID))
		return
	}
	if err := config.DB.First(&models.ServiceSchedule{}, binding.ScheduleID).Error; err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("invalid schedule_id %d", binding.ScheduleID))
		return
	}

	if err := config.DB.Create(&binding).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, binding)
}

func UpdateHostelService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var binding models.HostelService
	if err := config.DB.First(&binding, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("hostel service %d not found", id))
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

	if err := config.DB.Model(&binding).Updates(updateData).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, binding)
}

// ----------------------------------------------------
// Users (GET/POST /api/users, ...)
// ----------------------------------------------------

func GetUsers(c *gin.Context) {
	var list []models.User
	config.DB.Order("full_name ASC").Find(&list)
	utils.JSONSuccess(c, http.StatusOK, list)
}

func CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if user.FullName == "" {
		utils.JSONError(c, http.StatusBadRequest, "fullName is required")
		return
	}
	if !user.Gender.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "gender must be male or female")
		return
	}

	if err := config.DB.Create(&user).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func GetUserByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("user %d not found", id))
			return
		}
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

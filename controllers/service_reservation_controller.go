// controllers/service_reservation_controller.go
package controllers

import (
	"net/http"
	"time"

	"shelter-backend/models"
	"shelter-backend/services"
	"shelter-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateServiceReservationPayload struct {
	UserID          uint   `json:"user_id" binding:"required"`
	HostelServiceID uint   `json:"hostel_service_id" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=individual group"`
	MenQuantity     int    `json:"men_quantity" binding:"min=0"`
	WomenQuantity   int    `json:"women_quantity" binding:"min=0"`
	// RFC3339; normalized to UTC before it reaches the core.
	DatetimeReserved string `json:"datetime_reserved" binding:"required"`
	DurationMinutes  int    `json:"duration_minutes"` // optional override
}

type ChangeServiceStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

type ServiceReservationController struct {
	Svc *services.ServiceReservationService
}

func NewServiceReservationController(svc *services.ServiceReservationService) *ServiceReservationController {
	return &ServiceReservationController{Svc: svc}
}

// POST /api/service-reservations
func (ctrl *ServiceReservationController) CreateReservation(c *gin.Context) {
	var payload CreateServiceReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"kind":    "invalid_payload",
				"message": err.Error(),
			},
		})
		return
	}

	at, err := time.Parse(time.RFC3339, payload.DatetimeReserved)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"kind":    "invalid_payload",
				"field":   "datetime_reserved",
				"message": "datetime_reserved must be RFC3339",
			},
		})
		return
	}

	reservation, err := ctrl.Svc.Create(
		c.Request.Context(),
		payload.UserID,
		payload.HostelServiceID,
		models.ReservationType(payload.Type),
		payload.MenQuantity,
		payload.WomenQuantity,
		at,
		payload.DurationMinutes,
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// GET /api/service-reservations
func (ctrl *ServiceReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.Svc.GetAllWithRelations()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/service-reservations/:id
func (ctrl *ServiceReservationController) GetReservationByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	reservation, err := ctrl.Svc.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// PATCH /api/service-reservations/:id/status
func (ctrl *ServiceReservationController) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload ChangeServiceStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"kind":    "invalid_payload",
				"field":   "status",
				"message": "status is required",
			},
		})
		return
	}

	reservation, err := ctrl.Svc.Transition(c.Request.Context(), id, models.ServiceStatus(payload.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// GET /api/service-reservations/expired?as_of=RFC3339
// Read-only: reports pending/confirmed reservations whose slot already
// ended without touching their status.
func (ctrl *ServiceReservationController) GetExpired(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"kind":    "invalid_payload",
					"field":   "as_of",
					"message": "as_of must be RFC3339",
				},
			})
			return
		}
		asOf = parsed.UTC()
	}

	expired, err := ctrl.Svc.ExpiredReservations(asOf)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	ids := make([]uint, 0, len(expired))
	for i := range expired {
		ids = append(ids, expired[i].ID)
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"as_of":           asOf.Format(time.RFC3339),
		"reservation_ids": ids,
	})
}

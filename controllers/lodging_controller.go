// controllers/lodging_controller.go
package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"shelter-backend/models"
	"shelter-backend/services"
	"shelter-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateLodgingPayload struct {
	HostelID      uint            `json:"hostel_id" binding:"required"`
	UserID        uint            `json:"user_id" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=individual group"`
	MenQuantity   int             `json:"men_quantity" binding:"min=0"`
	WomenQuantity int             `json:"women_quantity" binding:"min=0"`
	ArrivalDate   string          `json:"arrival_date" binding:"required"` // YYYY-MM-DD
	PartyMembers  json.RawMessage `json:"party_members,omitempty"`
}

type ChangeLodgingStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type LodgingController struct {
	Svc *services.LodgingService
}

func NewLodgingController(svc *services.LodgingService) *LodgingController {
	return &LodgingController{Svc: svc}
}

// POST /api/lodging-reservations
func (ctrl *LodgingController) CreateReservation(c *gin.Context) {
	var payload CreateLodgingPayload
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

	arrival, err := utils.ParseDate(payload.ArrivalDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"kind":    "invalid_payload",
				"field":   "arrival_date",
				"message": "arrival_date must be YYYY-MM-DD",
			},
		})
		return
	}

	reservation, err := ctrl.Svc.Create(
		c.Request.Context(),
		payload.HostelID,
		payload.UserID,
		models.ReservationType(payload.Type),
		payload.MenQuantity,
		payload.WomenQuantity,
		arrival,
		datatypes.JSON(payload.PartyMembers),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// GET /api/lodging-reservations
func (ctrl *LodgingController) GetReservations(c *gin.Context) {
	list, err := ctrl.Svc.GetAllWithRelations()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/lodging-reservations/:id
func (ctrl *LodgingController) GetReservationByID(c *gin.Context) {
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

// PATCH /api/lodging-reservations/:id/status
func (ctrl *LodgingController) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload ChangeLodgingStatusPayload
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

	reservation, err := ctrl.Svc.Transition(c.Request.Context(), id, models.LodgingStatus(payload.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// DELETE /api/lodging-reservations/:id
func (ctrl *LodgingController) DeleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Svc.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// GET /api/hostels/:id/availability?date=YYYY-MM-DD
func (ctrl *LodgingController) GetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	date := time.Now().UTC()
	if dateStr != "" {
		parsed, err := utils.ParseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"kind":    "invalid_payload",
					"field":   "date",
					"message": "date must be YYYY-MM-DD",
				},
			})
			return
		}
		date = parsed
	}

	menAvail, womenAvail, err := ctrl.Svc.AvailableCapacity(id, date)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"hostel_id":       id,
		"date":            utils.BeginningOfDay(date.UTC()).Format(utils.DateFormat),
		"men_available":   menAvail,
		"women_available": womenAvail,
	})
}

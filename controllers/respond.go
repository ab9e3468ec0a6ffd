package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"shelter-backend/services"

	"github.com/gin-gonic/gin"
)

// respondDomainError renders a services.DomainError as a structured JSON
// error (kind + offending field + message) with the matching HTTP status.
// Anything else is a 500.
func respondDomainError(c *gin.Context, err error) {
	var de *services.DomainError
	if !errors.As(err, &de) {
		log.Printf("❌ unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"kind":    "internal",
				"message": "internal server error",
			},
		})
		return
	}

	status := http.StatusBadRequest
	switch de.Kind {
	case services.KindInvalidPartySize, services.KindInvalidSchedule:
		status = http.StatusUnprocessableEntity
	case services.KindCapacityExceeded, services.KindInvalidTransition, services.KindIllegalDelete:
		status = http.StatusConflict
	case services.KindBusy:
		status = http.StatusServiceUnavailable
	case services.KindNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"kind":    string(de.Kind),
			"field":   de.Field,
			"message": de.Message,
		},
	})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || raw == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"kind":    "invalid_payload",
				"field":   "id",
				"message": "id must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(raw), true
}

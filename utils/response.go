package utils

import "github.com/gin-gonic/gin"

// JSONSuccess wraps data in the standard success envelope.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes a plain error message in the standard envelope.
// Structured domain errors go through the controllers' own renderer.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// EnvBool reads a boolean flag from the environment ("true"/"1" = on).
func EnvBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	return v == "true" || v == "1" || v == "yes"
}

// NewReferenceCode builds a short prefixed reference like "LR-8F2A1C9D"
// for staff-facing reservation lookups.
func NewReferenceCode(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s-%s", strings.ToUpper(prefix), strings.ToUpper(id.String()[:8]))
}

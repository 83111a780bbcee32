// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTokenFromContext retrieves the bearer token from the Authorization header.
// Returns an empty string if not found.
func GetTokenFromContext(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// GetFirebaseUIDFromContext retrieves the Firebase UID from the Gin context.
func GetFirebaseUIDFromContext(c *gin.Context) string {
	return c.GetString(FirebaseUIDKey)
}

// GetDeviceIDFromContext retrieves the device ID set by the device middleware.
func GetDeviceIDFromContext(c *gin.Context) string {
	return c.GetString(DeviceIDKey)
}

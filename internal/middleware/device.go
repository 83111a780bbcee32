// File: internal/middleware/device.go
package middleware

import (
	"strings"

	"vibewise_backend/internal/common"
	"vibewise_backend/internal/device"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDeviceIDLength = 128

// DeviceContext resolves the caller's device ID and platform for every request.
// A missing or oversized X-Device-ID is replaced by a fresh one, echoed back so the client can keep it.
func DeviceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := strings.TrimSpace(c.GetHeader(common.DeviceIDHeader))
		if deviceID == "" || len(deviceID) > maxDeviceIDLength {
			deviceID = uuid.NewString()
		}
		c.Header(common.DeviceIDHeader, deviceID)
		c.Set(common.DeviceIDKey, deviceID)
		c.Set(common.PlatformInfoKey, device.FromRequest(c.Request))
		c.Next()
	}
}

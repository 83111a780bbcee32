package device

import (
	"vibewise_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes platform detection over HTTP.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new device handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger.Named("DeviceHandler")}
}

// RegisterRoutes sets up the platform route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/platform", h.getPlatformInfo)
}

func (h *Handler) getPlatformInfo(c *gin.Context) {
	info, ok := InfoFromContext(c)
	if !ok {
		info = FromRequest(c.Request)
	}
	h.logger.Debug("Platform detected", zap.String("platform", info.Platform), zap.Bool("mobile", info.IsMobile))
	common.RespondOK(c, "Platform detected.", gin.H{
		"device_id": common.GetDeviceIDFromContext(c),
		"platform":  info,
	})
}

// InfoFromContext returns the Info stored by the device middleware.
func InfoFromContext(c *gin.Context) (Info, bool) {
	val, exists := c.Get(common.PlatformInfoKey)
	if !exists {
		return Info{}, false
	}
	info, ok := val.(Info)
	return info, ok
}

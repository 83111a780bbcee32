// File: internal/user/handler.go
package user

import (
	"vibewise_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("UserHandler"),
	}
}

// RegisterRoutes sets up the routes for user operations. Every route requires authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	userGroup := router.Group("/users/me")
	userGroup.Use(authMW)
	{
		userGroup.GET("", h.getMe)
		userGroup.GET("/onboarding", h.getOnboardingStatus)
		userGroup.POST("/onboarding/complete", h.completeOnboarding)
	}
}

func (h *Handler) uid(c *gin.Context) (string, bool) {
	uid := common.GetFirebaseUIDFromContext(c)
	if uid == "" {
		h.logger.Error("Firebase UID not found in context", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User identifier missing."))
		return "", false
	}
	return uid, true
}

func (h *Handler) getMe(c *gin.Context) {
	uid, ok := h.uid(c)
	if !ok {
		return
	}
	profile, err := h.service.GetProfile(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", profile)
}

func (h *Handler) getOnboardingStatus(c *gin.Context) {
	uid, ok := h.uid(c)
	if !ok {
		return
	}
	completed := h.service.CheckOnboardingStatus(c.Request.Context(), uid)
	common.RespondOK(c, "Onboarding status retrieved.", OnboardingStatusResponse{Completed: completed})
}

func (h *Handler) completeOnboarding(c *gin.Context) {
	uid, ok := h.uid(c)
	if !ok {
		return
	}
	if !h.service.CompleteOnboarding(c.Request.Context(), uid, common.GetDeviceIDFromContext(c)) {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not complete onboarding."))
		return
	}
	common.RespondOK(c, "Onboarding completed.", OnboardingStatusResponse{Completed: true})
}

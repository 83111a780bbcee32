// File: internal/auth/handler.go
package auth

import (
	"net/http"

	"vibewise_backend/internal/common"
	"vibewise_backend/internal/device"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("AuthHandler"),
	}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/google", h.signInWithGoogle)
		authGroup.GET("/google/callback", h.googleCallback)
		authGroup.POST("/google/callback", h.googleCallback)
		authGroup.POST("/email", h.signInWithEmail)
		authGroup.POST("/magic-link", h.sendMagicLink)
		authGroup.POST("/magic-link/complete", h.completeMagicLink)
		authGroup.GET("/state", h.state)
		authGroup.POST("/sign-out", authMW, h.signOut)
	}
}

func callerFromContext(c *gin.Context) Caller {
	info, ok := device.InfoFromContext(c)
	if !ok {
		info = device.FromRequest(c.Request)
	}
	return Caller{DeviceID: common.GetDeviceIDFromContext(c), Platform: info}
}

// respondResult writes a successful Result as 200 and a failed one with failStatus.
func respondResult(c *gin.Context, result Result, message string, failStatus int) {
	if result.Success {
		common.RespondOK(c, message, result)
		return
	}
	common.RespondWithError(c, common.NewAPIError(failStatus, "AUTH_FAILED", "Authentication failed.").WithDetails(result))
}

func (h *Handler) signInWithGoogle(c *gin.Context) {
	var req GoogleSignInRequest
	// An empty body is allowed: the popup attempt then fails and the redirect flow starts.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("Google sign-in: Invalid request body", zap.Error(err))
			common.RespondBindError(c, err)
			return
		}
	}
	result := h.service.SignInWithGoogle(c.Request.Context(), req, callerFromContext(c))
	respondResult(c, result, "Google sign-in processed.", http.StatusUnauthorized)
}

func (h *Handler) googleCallback(c *gin.Context) {
	var cb RedirectCallback
	if err := c.ShouldBind(&cb); err != nil {
		h.logger.Warn("Google callback: Invalid parameters", zap.Error(err))
		common.RespondBindError(c, err)
		return
	}
	result := h.service.CheckRedirectResult(c.Request.Context(), cb, callerFromContext(c))
	respondResult(c, result, "Redirect result processed.", http.StatusUnauthorized)
}

func (h *Handler) signInWithEmail(c *gin.Context) {
	var req EmailSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Email sign-in: Invalid request body", zap.Error(err))
		common.RespondBindError(c, err)
		return
	}
	result := h.service.SignInWithEmail(c.Request.Context(), req.Email, req.Password, callerFromContext(c))
	respondResult(c, result, "Sign-in successful.", http.StatusUnauthorized)
}

func (h *Handler) sendMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Magic link: Invalid request body", zap.Error(err))
		common.RespondBindError(c, err)
		return
	}
	result := h.service.SendMagicLink(c.Request.Context(), req.Email, req.ContinueURL, callerFromContext(c))
	respondResult(c, result, "Sign-in link sent.", http.StatusBadGateway)
}

func (h *Handler) completeMagicLink(c *gin.Context) {
	var req CompleteMagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Magic link completion: Invalid request body", zap.Error(err))
		common.RespondBindError(c, err)
		return
	}
	result := h.service.CompleteMagicLink(c.Request.Context(), req.Email, req.OOBCode, callerFromContext(c))
	respondResult(c, result, "Sign-in successful.", http.StatusUnauthorized)
}

func (h *Handler) state(c *gin.Context) {
	common.RespondOK(c, "", h.service.State(c.Request.Context(), common.GetTokenFromContext(c)))
}

func (h *Handler) signOut(c *gin.Context) {
	uid := common.GetFirebaseUIDFromContext(c)
	result := h.service.SignOutUser(c.Request.Context(), uid, callerFromContext(c))
	respondResult(c, result, "Signed out.", http.StatusInternalServerError)
}

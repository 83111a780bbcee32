// File: internal/middleware/auth.go
package middleware

import (
	"context"

	"vibewise_backend/internal/common"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier verifies Firebase ID tokens. Implemented by firebase.FirebaseService.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// AuthMiddleware creates a Gin middleware that requires a valid Firebase ID token.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(common.AuthorizationHeader) == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		idToken := common.GetTokenFromContext(c)
		if idToken == "" {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired ID token."))
			return
		}

		c.Set(common.FirebaseUIDKey, token.UID)
		c.Set(common.FirebaseTokenKey, token)

		logger.Debug("User authenticated successfully", zap.String("uid", token.UID))
		c.Next()
	}
}

// GetFirebaseTokenFromContext retrieves the verified token from the Gin context.
func GetFirebaseTokenFromContext(c *gin.Context) *fbauth.Token {
	val, exists := c.Get(common.FirebaseTokenKey)
	if !exists {
		return nil
	}
	token, ok := val.(*fbauth.Token)
	if !ok {
		return nil
	}
	return token
}

// File: internal/auth/interfaces.go
package auth

import (
	"context"
	"time"

	"vibewise_backend/internal/identity"
	"vibewise_backend/internal/user"

	fbauth "firebase.google.com/go/v4/auth"
)

// IdentityClient performs end-user sign-in against Firebase Auth.
type IdentityClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error)
	SignInWithIdp(ctx context.Context, cred identity.IdpCredential, requestURI string) (*identity.Session, error)
	SendSignInLink(ctx context.Context, email, continueURL string) error
	SignInWithEmailLink(ctx context.Context, email, oobCode string) (*identity.Session, error)
}

// TokenAdmin is the Admin SDK surface used for sessions. Implemented by firebase.FirebaseService.
type TokenAdmin interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	GetUser(ctx context.Context, uid string) (*fbauth.UserRecord, error)
}

// UserBootstrapper creates user documents on first sign-in. Implemented by user.ServiceImplementation.
type UserBootstrapper interface {
	EnsureUserDocument(ctx context.Context, profile user.Profile) (bool, error)
}

// DeviceStore persists per-device values. Implemented by localstore.Service.
type DeviceStore interface {
	Get(ctx context.Context, deviceID, key string) (string, error)
	Set(ctx context.Context, deviceID, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, deviceID, key string) error
}

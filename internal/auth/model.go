// File: internal/auth/model.go
package auth

import (
	"vibewise_backend/internal/device"
	"vibewise_backend/internal/identity"
)

// Firebase client error codes produced by this package rather than the identity backend.
const (
	CodeInternalError    = "auth/internal-error"
	CodeInvalidAuthEvent = "auth/invalid-auth-event"
	CodeUserCancelled    = "auth/user-cancelled"
	CodeMissingEmail     = "auth/missing-email"
	CodeInvalidUserToken = "auth/invalid-user-token"
	CodeUserNotFound     = "auth/user-not-found"
)

// Caller identifies the device a request came from.
type Caller struct {
	DeviceID string
	Platform device.Info
}

// User is the signed-in user as reported to clients.
type User struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	PhotoURL      string `json:"photoURL,omitempty"`
	ProviderID    string `json:"providerId,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	IsNewUser     bool   `json:"isNewUser"`
}

// Token is the Firebase session handed back after sign-in.
type Token struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Result is the outcome of every sign-in operation. Failures carry a Firebase auth/* code.
type Result struct {
	Success     bool   `json:"success"`
	User        *User  `json:"user,omitempty"`
	Token       *Token `json:"token,omitempty"`
	Error       string `json:"error,omitempty"`
	Redirecting bool   `json:"redirecting,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

func failure(code string) Result {
	return Result{Success: false, Error: code}
}

func userFromSession(s *identity.Session, isNew bool) *User {
	return &User{
		UID:         s.UID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		PhotoURL:    s.PhotoURL,
		ProviderID:  s.ProviderID,
		IsNewUser:   isNew,
	}
}

// StateResponse mirrors the client auth store.
type StateResponse struct {
	User    *User  `json:"user"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// GoogleSignInRequest carries the credential the web client obtained from Google Identity Services.
type GoogleSignInRequest struct {
	Credential  string `json:"credential"`
	AccessToken string `json:"access_token"`
}

// RedirectCallback is the query (or form) Google redirects back with.
type RedirectCallback struct {
	Code  string `form:"code" json:"code"`
	State string `form:"state" json:"state"`
	Error string `form:"error" json:"error"`
}

// Empty reports whether no redirect is being completed.
func (r RedirectCallback) Empty() bool {
	return r.Code == "" && r.State == "" && r.Error == ""
}

// EmailSignInRequest defines the structure for email/password sign-in.
type EmailSignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MagicLinkRequest asks for a passwordless sign-in email.
type MagicLinkRequest struct {
	Email       string `json:"email" binding:"required,email"`
	ContinueURL string `json:"continue_url" binding:"omitempty,url"`
}

// CompleteMagicLinkRequest completes a passwordless sign-in. Email may be omitted on the
// device that requested the link.
type CompleteMagicLinkRequest struct {
	Email   string `json:"email" binding:"omitempty,email"`
	OOBCode string `json:"oob_code" binding:"required"`
}

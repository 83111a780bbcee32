// File: internal/user/model.go
package user

import (
	"fmt"
	"time"
)

// Settings and summary defaults written at first sign-in.
const (
	DefaultTheme               = "light"
	DefaultNotificationEnabled = true
)

// Document field names.
const (
	FieldOnboardingCompleted = "onboarding_completed"
	FieldUpdatedAt           = "updatedAt"
	FieldCreatedAt           = "createdAt"
)

// Profile is the identity data a sign-in yields.
type Profile struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// ProfilePath is users/{uid}.
func ProfilePath(uid string) string {
	return fmt.Sprintf("users/%s", uid)
}

// SettingsPath is users/{uid}/private/settings.
func SettingsPath(uid string) string {
	return fmt.Sprintf("users/%s/private/settings", uid)
}

// SummaryPath is users/{uid}/private/summary.
func SummaryPath(uid string) string {
	return fmt.Sprintf("users/%s/private/summary", uid)
}

// ProfileResponse is the public profile sent in API responses.
type ProfileResponse struct {
	UID                 string     `json:"uid"`
	Email               string     `json:"email,omitempty"`
	DisplayName         string     `json:"displayName,omitempty"`
	PhotoURL            string     `json:"photoURL,omitempty"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
}

// OnboardingStatusResponse is returned by the onboarding endpoints.
type OnboardingStatusResponse struct {
	Completed bool `json:"completed"`
}

// ToProfileResponse builds a ProfileResponse from a users/{uid} document.
func ToProfileResponse(uid string, data map[string]interface{}, onboarded bool) ProfileResponse {
	resp := ProfileResponse{
		UID:                 uid,
		Email:               stringField(data, "email"),
		DisplayName:         stringField(data, "displayName"),
		PhotoURL:            stringField(data, "photoURL"),
		CreatedAt:           timeField(data, FieldCreatedAt),
		UpdatedAt:           timeField(data, FieldUpdatedAt),
		OnboardingCompleted: onboarded,
	}
	return resp
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func timeField(data map[string]interface{}, key string) *time.Time {
	t, ok := data[key].(time.Time)
	if !ok || t.IsZero() {
		return nil
	}
	return &t
}

// boolField is true only for a stored boolean true.
func boolField(data map[string]interface{}, key string) bool {
	b, ok := data[key].(bool)
	return ok && b
}

// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vibewise_backend/internal/analytics"
	"vibewise_backend/internal/common"
	"vibewise_backend/internal/localstore"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

// Service bootstraps user documents and tracks onboarding.
type Service interface {
	EnsureUserDocument(ctx context.Context, profile Profile) (bool, error)
	CheckOnboardingStatus(ctx context.Context, uid string) bool
	CompleteOnboarding(ctx context.Context, uid, deviceID string) bool
	GetProfile(ctx context.Context, uid string) (*ProfileResponse, error)
}

// DeviceStore is the part of the device store onboarding mirrors into.
type DeviceStore interface {
	Set(ctx context.Context, deviceID, key, value string, ttl time.Duration) error
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	store    Store
	devices  DeviceStore
	recorder analytics.Recorder
	logger   *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(store Store, devices DeviceStore, recorder analytics.Recorder, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		store:    store,
		devices:  devices,
		recorder: recorder,
		logger:   logger.Named("UserService"),
	}
}

// EnsureUserDocument writes the profile, settings and summary documents the first time a uid
// signs in. It reports whether the documents were created. Writes are sequential and stop at
// the first failure; an existing users/{uid} document means no writes at all.
func (s *ServiceImplementation) EnsureUserDocument(ctx context.Context, profile Profile) (bool, error) {
	if strings.TrimSpace(profile.UID) == "" {
		return false, common.ErrBadRequest.WithDetails("User uid is required.")
	}
	log := s.logger.With(zap.String("uid", profile.UID))

	_, err := s.store.Get(ctx, ProfilePath(profile.UID))
	if err == nil {
		log.Debug("User document already exists")
		return false, nil
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		log.Error("Failed to check for user document", zap.Error(err))
		return false, fmt.Errorf("failed to check user document: %w", err)
	}

	writes := []struct {
		path string
		data map[string]interface{}
	}{
		{ProfilePath(profile.UID), map[string]interface{}{
			"uid":          profile.UID,
			"email":        profile.Email,
			"displayName":  profile.DisplayName,
			"photoURL":     profile.PhotoURL,
			FieldCreatedAt: firestore.ServerTimestamp,
			FieldUpdatedAt: firestore.ServerTimestamp,
		}},
		{SettingsPath(profile.UID), map[string]interface{}{
			"theme":               DefaultTheme,
			"notificationEnabled": DefaultNotificationEnabled,
			FieldCreatedAt:        firestore.ServerTimestamp,
			FieldUpdatedAt:        firestore.ServerTimestamp,
		}},
		{SummaryPath(profile.UID), map[string]interface{}{
			"totalSessions":   0,
			"streakDays":      0,
			"lastSessionDate": nil,
			FieldCreatedAt:    firestore.ServerTimestamp,
			FieldUpdatedAt:    firestore.ServerTimestamp,
		}},
	}
	for _, w := range writes {
		if err := s.store.Set(ctx, w.path, w.data); err != nil {
			log.Error("Failed to write user document", zap.String("path", w.path), zap.Error(err))
			return false, fmt.Errorf("failed to create user documents: %w", err)
		}
	}

	log.Info("Created user documents")
	return true, nil
}

// CheckOnboardingStatus reports whether uid has completed onboarding. The settings document
// wins; the profile document is consulted only when settings are absent. Errors read as false.
func (s *ServiceImplementation) CheckOnboardingStatus(ctx context.Context, uid string) bool {
	log := s.logger.With(zap.String("uid", uid))

	settings, err := s.store.Get(ctx, SettingsPath(uid))
	if err == nil {
		return boolField(settings, FieldOnboardingCompleted)
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		log.Error("Failed to read settings document", zap.Error(err))
		return false
	}

	profile, err := s.store.Get(ctx, ProfilePath(uid))
	if err != nil {
		if !errors.Is(err, ErrDocumentNotFound) {
			log.Error("Failed to read user document", zap.Error(err))
		}
		return false
	}
	return boolField(profile, FieldOnboardingCompleted)
}

// CompleteOnboarding marks onboarding done in the settings document and mirrors the flag
// into the caller's device store.
func (s *ServiceImplementation) CompleteOnboarding(ctx context.Context, uid, deviceID string) bool {
	log := s.logger.With(zap.String("uid", uid))

	err := s.store.Update(ctx, SettingsPath(uid), map[string]interface{}{
		FieldOnboardingCompleted: true,
		FieldUpdatedAt:           firestore.ServerTimestamp,
	})
	if err != nil {
		log.Error("Failed to complete onboarding", zap.Error(err))
		return false
	}

	if deviceID == "" {
		log.Debug("No device to mirror onboarding flag into")
	} else if err := s.devices.Set(ctx, deviceID, localstore.KeyOnboardingCompleted, "true", 0); err != nil {
		log.Error("Failed to mirror onboarding flag to device", zap.String("device_id", deviceID), zap.Error(err))
		return false
	}

	s.recorder.Record(ctx, analytics.Event{Name: analytics.EventTutorialComplete, UID: uid, DeviceID: deviceID})
	return true
}

// GetProfile returns the users/{uid} document with the onboarding flag resolved.
func (s *ServiceImplementation) GetProfile(ctx context.Context, uid string) (*ProfileResponse, error) {
	data, err := s.store.Get(ctx, ProfilePath(uid))
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, common.ErrNotFound.WithDetails("User profile not found.")
		}
		s.logger.Error("Failed to read user profile", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("failed to read user profile: %w", err)
	}
	resp := ToProfileResponse(uid, data, s.CheckOnboardingStatus(ctx, uid))
	return &resp, nil
}

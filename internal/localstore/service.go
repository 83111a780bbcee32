// File: internal/localstore/service.go
package localstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service is the device-scoped key/value store the auth and onboarding flows persist into.
type Service interface {
	Get(ctx context.Context, deviceID, key string) (string, error)
	Set(ctx context.Context, deviceID, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, deviceID, key string) error
	Sweep(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new device store service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("LocalStore"), now: time.Now}
}

// Get returns the live value for key, or ErrNotFound. Expired entries read as absent.
func (s *service) Get(ctx context.Context, deviceID, key string) (string, error) {
	if err := validateKey(deviceID, key); err != nil {
		return "", err
	}
	entry, err := s.repo.Find(ctx, deviceID, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %q for device: %w", key, err)
	}
	if entry.Expired(s.now()) {
		return "", ErrNotFound
	}
	return entry.Value, nil
}

// Set stores value under key. A zero ttl never expires.
func (s *service) Set(ctx context.Context, deviceID, key, value string, ttl time.Duration) error {
	if err := validateKey(deviceID, key); err != nil {
		return err
	}
	entry := &Entry{DeviceID: deviceID, Key: key, Value: value}
	if ttl > 0 {
		expiresAt := s.now().Add(ttl).UTC()
		entry.ExpiresAt = &expiresAt
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("failed to store %q for device: %w", key, err)
	}
	s.logger.Debug("Stored device value", zap.String("device_id", deviceID), zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// Remove deletes key for the device.
func (s *service) Remove(ctx context.Context, deviceID, key string) error {
	if err := validateKey(deviceID, key); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, deviceID, key); err != nil {
		return fmt.Errorf("failed to remove %q for device: %w", key, err)
	}
	return nil
}

// Sweep deletes expired entries and reports how many were removed.
func (s *service) Sweep(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired device values: %w", err)
	}
	return n, nil
}

func validateKey(deviceID, key string) error {
	if strings.TrimSpace(deviceID) == "" {
		return errors.New("localstore: device id is required")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("localstore: key is required")
	}
	return nil
}

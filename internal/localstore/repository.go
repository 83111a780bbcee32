// File: internal/localstore/repository.go
package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a device has no live value for a key.
var ErrNotFound = errors.New("localstore: key not found")

// Repository defines the interface for device store persistence.
type Repository interface {
	Find(ctx context.Context, deviceID, key string) (*Entry, error)
	Upsert(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, deviceID, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM device store repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Migrate creates or updates the device store table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate device store: %w", err)
	}
	return nil
}

// Find retrieves the entry for a device and key, expired or not.
func (r *gormRepository) Find(ctx context.Context, deviceID, key string) (*Entry, error) {
	var entry Entry
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND store_key = ?", deviceID, key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert inserts the entry or replaces the value and expiry of the existing one.
func (r *gormRepository) Upsert(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(entry).Error
}

// Delete removes a key for a device. Missing keys are not an error.
func (r *gormRepository) Delete(ctx context.Context, deviceID, key string) error {
	return r.db.WithContext(ctx).
		Where("device_id = ? AND store_key = ?", deviceID, key).
		Delete(&Entry{}).Error
}

// DeleteExpired removes every entry whose expiry is at or before now.
func (r *gormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&Entry{})
	return result.RowsAffected, result.Error
}

// File: internal/localstore/model.go
package localstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Keys written by the auth and onboarding flows.
const (
	KeyEmailForSignIn      = "emailForSignIn"
	KeyOnboardingCompleted = "onboarding_completed"
)

// Entry is one key/value pair scoped to a client device.
type Entry struct {
	ID        string     `gorm:"type:varchar(36);primaryKey"`
	DeviceID  string     `gorm:"type:varchar(128);not null;uniqueIndex:idx_device_key"`
	Key       string     `gorm:"column:store_key;type:varchar(128);not null;uniqueIndex:idx_device_key"`
	Value     string     `gorm:"type:text;not null"`
	ExpiresAt *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Entry model.
func (Entry) TableName() string {
	return "device_store_entries"
}

// BeforeCreate assigns a UUID; SQLite has no gen_random_uuid().
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the entry is past its expiry at now.
func (e *Entry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

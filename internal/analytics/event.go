// Package analytics records sign-in lifecycle events.
package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Event names, matching the Firebase Analytics events the client bundle logs.
const (
	EventLogin            = "login"
	EventSignUp           = "sign_up"
	EventTutorialComplete = "tutorial_complete"
	EventLogout           = "logout"
)

// Event is one auth lifecycle occurrence.
type Event struct {
	Name       string
	UID        string
	Method     string
	Platform   string
	IsMobile   bool
	IsNewUser  bool
	DeviceID   string
	OccurredAt time.Time
}

// EventToDocument converts an Event to its Elasticsearch document body.
func EventToDocument(e Event) (string, error) {
	if e.Name == "" {
		return "", errors.New("event name cannot be empty")
	}
	occurredAt := e.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	doc := map[string]interface{}{
		"event":       e.Name,
		"uid":         e.UID,
		"is_mobile":   e.IsMobile,
		"is_new_user": e.IsNewUser,
		"occurred_at": occurredAt.UTC(),
	}
	if e.Method != "" {
		doc["method"] = e.Method
	}
	if e.Platform != "" {
		doc["platform"] = e.Platform
	}
	if e.DeviceID != "" {
		doc["device_id"] = e.DeviceID
	}

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("error marshalling event to JSON for ES: %w", err)
	}
	return string(docBytes), nil
}

// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// DeviceIDHeader carries the client-generated device identifier.
	DeviceIDHeader = "X-Device-ID"

	// FirebaseUIDKey is the context key for storing the Firebase UID
	FirebaseUIDKey = "firebaseUID"
	// FirebaseTokenKey stores the verified *auth.Token
	FirebaseTokenKey = "firebaseToken"
	// DeviceIDKey is the context key for the resolved device ID
	DeviceIDKey = "deviceID"
	// PlatformInfoKey is the context key for the detected device.Info
	PlatformInfoKey = "platformInfo"
)

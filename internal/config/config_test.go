package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("FIREBASE_WEB_API_KEY", "test-api-key")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OAUTH_STATE_TTL_MINUTES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.vibewise.test, capacitor://localhost")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "test-api-key", cfg.FirebaseWebAPIKey)
	assert.Equal(t, "vibewise://auth-callback", cfg.NativeRedirectURI)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "auth_events", cfg.AnalyticsIndexName)
	assert.Equal(t, 5*60, int(cfg.OAuthStateTTL.Seconds()))
	assert.Equal(t, 24, int(cfg.EmailLinkTTL.Hours()))
	assert.Equal(t, "http://localhost:5173/auth/email-link", cfg.EmailLinkContinueURL)
	assert.Equal(t, []string{"https://app.vibewise.test", "capacitor://localhost"}, cfg.CORSAllowedOrigins)
}

func TestLoad_MissingWebAPIKey(t *testing.T) {
	t.Setenv("FIREBASE_WEB_API_KEY", "")
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_WEB_API_KEY")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "api key and sqlite", cfg: Config{FirebaseWebAPIKey: "k", DBDriver: "sqlite"}},
		{name: "emulator without api key", cfg: Config{FirebaseAuthEmulatorHost: "localhost:9099", DBDriver: "postgres"}},
		{name: "unknown driver", cfg: Config{FirebaseWebAPIKey: "k", DBDriver: "mysql"}, wantErr: true},
		{name: "missing key file", cfg: Config{FirebaseWebAPIKey: "k", DBDriver: "sqlite", FirebaseServiceAccountKeyPath: "/nonexistent/key.json"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

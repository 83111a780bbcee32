// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode            string        `mapstructure:"GIN_MODE"`
	ServerHost         string        `mapstructure:"SERVER_HOST"`
	ServerPort         string        `mapstructure:"SERVER_PORT"`
	ServerTimeout      time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Database Configuration (device store)
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath    string        `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseServiceAccountJSONBase64 string        `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	FirebaseProjectID                string        `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey                string        `mapstructure:"FIREBASE_WEB_API_KEY"`
	FirebaseAuthEmulatorHost         string        `mapstructure:"FIREBASE_AUTH_EMULATOR_HOST"`
	IdentityToolkitBaseURL           string        `mapstructure:"IDENTITY_TOOLKIT_BASE_URL"`
	IdentityRequestTimeout           time.Duration `mapstructure:"IDENTITY_REQUEST_TIMEOUT_SECONDS"`

	// Google OAuth
	GoogleClientID     string        `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string        `mapstructure:"GOOGLE_REDIRECT_URI"`
	NativeRedirectURI  string        `mapstructure:"NATIVE_REDIRECT_URI"`
	OAuthStateTTL      time.Duration `mapstructure:"OAUTH_STATE_TTL_MINUTES"`

	// Sign-in links
	EmailLinkContinueURL string        `mapstructure:"EMAIL_LINK_CONTINUE_URL"`
	EmailLinkTTL         time.Duration `mapstructure:"EMAIL_LINK_TTL_HOURS"`

	// Cron Jobs
	LocalStoreSweepSchedule string `mapstructure:"LOCAL_STORE_SWEEP_SCHEDULE"`

	// Elasticsearch Configuration (auth analytics)
	ElasticsearchURL   string `mapstructure:"ELASTICSEARCH_URL"`
	AnalyticsIndexName string `mapstructure:"ANALYTICS_INDEX_NAME"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.IdentityRequestTimeout = time.Duration(v.GetInt("IDENTITY_REQUEST_TIMEOUT_SECONDS")) * time.Second
	cfg.OAuthStateTTL = time.Duration(v.GetInt("OAUTH_STATE_TTL_MINUTES")) * time.Minute
	cfg.EmailLinkTTL = time.Duration(v.GetInt("EMAIL_LINK_TTL_HOURS")) * time.Hour
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "vibewise")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_SOURCE", "vibewise.db")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_WEB_API_KEY", "")
	v.SetDefault("FIREBASE_AUTH_EMULATOR_HOST", "")
	v.SetDefault("IDENTITY_TOOLKIT_BASE_URL", "")
	v.SetDefault("IDENTITY_REQUEST_TIMEOUT_SECONDS", 15)

	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URI", "http://localhost:5173/auth/callback")
	v.SetDefault("NATIVE_REDIRECT_URI", "vibewise://auth-callback")
	v.SetDefault("OAUTH_STATE_TTL_MINUTES", 10)

	v.SetDefault("EMAIL_LINK_CONTINUE_URL", "http://localhost:5173/auth/email-link")
	v.SetDefault("EMAIL_LINK_TTL_HOURS", 24)

	v.SetDefault("LOCAL_STORE_SWEEP_SCHEDULE", "@hourly")

	// Empty disables the analytics recorder.
	v.SetDefault("ELASTICSEARCH_URL", "")
	v.SetDefault("ANALYTICS_INDEX_NAME", "auth_events")
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FirebaseWebAPIKey) == "" && c.FirebaseAuthEmulatorHost == "" {
		return fmt.Errorf("FIREBASE_WEB_API_KEY is not set. This is required for end-user sign-in")
	}
	if c.FirebaseServiceAccountKeyPath != "" {
		if _, err := os.Stat(c.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return fmt.Errorf("firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", c.FirebaseServiceAccountKeyPath)
		}
	}
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}
	return nil
}

// PostgresDSN builds the GORM DSN from the individual DB_* settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package firebase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"vibewise_backend/internal/config"
)

// FirebaseService wraps the Admin SDK clients used by the service: Auth for token
// verification and revocation, Firestore for the user documents.
type FirebaseService struct {
	authClient      *auth.Client
	firestoreClient *firestore.Client
	logger          *zap.Logger
}

// NewFirebaseService initializes the Firebase Admin SDK. Credentials come from
// FIREBASE_SERVICE_ACCOUNT_KEY_PATH, then FIREBASE_SERVICE_ACCOUNT_JSON_BASE64, then ADC.
func NewFirebaseService(cfg *config.Config, logger *zap.Logger) (*FirebaseService, func(), error) {
	ctx := context.Background()
	logger = logger.Named("firebase")

	opts, err := credentialOptions(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var appConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err))
		return nil, nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to get Firestore client", zap.Error(err))
		return nil, nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	svc := &FirebaseService{
		authClient:      authClient,
		firestoreClient: fsClient,
		logger:          logger,
	}
	cleanup := func() {
		if err := fsClient.Close(); err != nil {
			logger.Warn("Error closing Firestore client", zap.Error(err))
		}
	}
	return svc, cleanup, nil
}

func credentialOptions(cfg *config.Config, logger *zap.Logger) ([]option.ClientOption, error) {
	switch {
	case cfg.FirebaseServiceAccountKeyPath != "":
		cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
		logger.Info("Using Firebase service account key file", zap.String("keyPath", cleanPath))
		return []option.ClientOption{option.WithCredentialsFile(cleanPath)}, nil
	case cfg.FirebaseServiceAccountJSONBase64 != "":
		decoded, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		logger.Info("Using base64 encoded Firebase service account JSON")
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}, nil
	default:
		logger.Info("No Firebase credentials configured, relying on Application Default Credentials")
		return nil, nil
	}
}

// Firestore returns the Firestore client.
func (s *FirebaseService) Firestore() *firestore.Client {
	return s.firestoreClient
}

// VerifyIDToken verifies a Firebase ID token and returns the token claims.
func (s *FirebaseService) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken == "" {
		return nil, errors.New("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", token.UID))
	return token, nil
}

// RevokeRefreshTokens revokes all refresh tokens for a given user.
func (s *FirebaseService) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Successfully revoked refresh tokens for user", zap.String("uid", uid))
	return nil
}

// GetUser looks up a Firebase Auth user record.
func (s *FirebaseService) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	u, err := s.authClient.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	return u, nil
}

// ForEachUser pages through every Firebase Auth user, calling fn for each.
// Iteration stops at the first error returned by fn.
func (s *FirebaseService) ForEachUser(ctx context.Context, fn func(*auth.UserRecord) error) error {
	it := s.authClient.Users(ctx, "")
	for {
		u, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if err := fn(u.UserRecord); err != nil {
			return err
		}
	}
}

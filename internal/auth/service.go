// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"strings"

	"vibewise_backend/internal/analytics"
	"vibewise_backend/internal/config"
	"vibewise_backend/internal/identity"
	"vibewise_backend/internal/localstore"
	"vibewise_backend/internal/platform/crypto"
	"vibewise_backend/internal/user"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Service orchestrates sign-in. No method returns a Go error: failures come back as a
// Result with Success false and an auth/* code.
type Service interface {
	SignInWithGoogle(ctx context.Context, req GoogleSignInRequest, caller Caller) Result
	CheckRedirectResult(ctx context.Context, cb RedirectCallback, caller Caller) Result
	SignInWithEmail(ctx context.Context, email, password string, caller Caller) Result
	SendMagicLink(ctx context.Context, email, continueURL string, caller Caller) Result
	CompleteMagicLink(ctx context.Context, email, oobCode string, caller Caller) Result
	SignOutUser(ctx context.Context, uid string, caller Caller) Result
	State(ctx context.Context, idToken string) StateResponse
}

type service struct {
	cfg      *config.Config
	identity IdentityClient
	google   GoogleOAuth
	pending  PendingRedirectStore
	admin    TokenAdmin
	users    UserBootstrapper
	devices  DeviceStore
	recorder analytics.Recorder
	logger   *zap.Logger
}

// NewService creates the sign-in service.
func NewService(
	cfg *config.Config,
	identityClient IdentityClient,
	google GoogleOAuth,
	pending PendingRedirectStore,
	admin TokenAdmin,
	users UserBootstrapper,
	devices DeviceStore,
	recorder analytics.Recorder,
	logger *zap.Logger,
) Service {
	return &service{
		cfg:      cfg,
		identity: identityClient,
		google:   google,
		pending:  pending,
		admin:    admin,
		users:    users,
		devices:  devices,
		recorder: recorder,
		logger:   logger.Named("AuthService"),
	}
}

// SignInWithGoogle signs in with Google. Native shells always go through the redirect flow
// with the custom scheme; web clients try their Google credential first and fall back to a
// single redirect when that fails.
func (s *service) SignInWithGoogle(ctx context.Context, req GoogleSignInRequest, caller Caller) Result {
	if caller.Platform.IsNative {
		return s.beginRedirect(ctx, s.cfg.NativeRedirectURI, caller)
	}

	session, err := s.identity.SignInWithIdp(ctx, identity.IdpCredential{
		ProviderID:  identity.GoogleProviderID,
		IDToken:     req.Credential,
		AccessToken: req.AccessToken,
	}, s.cfg.GoogleRedirectURI)
	if err != nil {
		s.logger.Warn("Google popup sign-in failed, falling back to redirect", zap.String("code", identity.ErrorCode(err)), zap.Error(err))
		return s.beginRedirect(ctx, s.cfg.GoogleRedirectURI, caller)
	}
	return s.completeSignIn(ctx, session, caller)
}

func (s *service) beginRedirect(ctx context.Context, redirectURI string, caller Caller) Result {
	state, err := crypto.GenerateSecureRandomString(32)
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return failure(CodeInternalError)
	}
	verifier := oauth2.GenerateVerifier()

	authURL, err := s.google.AuthCodeURL(state, redirectURI, verifier)
	if err != nil {
		s.logger.Error("Failed to build Google redirect URL", zap.Error(err))
		if errors.Is(err, ErrGoogleNotConfigured) {
			return failure("auth/operation-not-allowed")
		}
		return failure(CodeInternalError)
	}

	err = s.pending.Save(ctx, state, PendingRedirect{RedirectURI: redirectURI, CodeVerifier: verifier, DeviceID: caller.DeviceID})
	if err != nil {
		s.logger.Error("Failed to save pending redirect", zap.Error(err))
		return failure(CodeInternalError)
	}

	s.logger.Info("Started Google redirect sign-in", zap.String("redirect_uri", redirectURI), zap.String("platform", caller.Platform.Platform))
	return Result{Success: true, Redirecting: true, RedirectURL: authURL}
}

// CheckRedirectResult completes a Google redirect. Without callback data there is nothing to
// complete and the result is a success with no user.
func (s *service) CheckRedirectResult(ctx context.Context, cb RedirectCallback, caller Caller) Result {
	if cb.Empty() {
		return Result{Success: true}
	}

	pending, ok := s.pending.Consume(ctx, cb.State)
	if !ok {
		s.logger.Warn("Google redirect callback with unknown or expired state")
		return failure(CodeInvalidAuthEvent)
	}
	if cb.Error != "" {
		s.logger.Info("Google redirect sign-in was not completed", zap.String("error", cb.Error))
		return failure(CodeUserCancelled)
	}
	if cb.Code == "" {
		return failure(CodeInvalidAuthEvent)
	}

	tokens, err := s.google.Exchange(ctx, cb.Code, pending.RedirectURI, pending.CodeVerifier)
	if err != nil {
		s.logger.Error("Google code exchange failed", zap.Error(err))
		return failure("auth/invalid-credential")
	}

	session, err := s.identity.SignInWithIdp(ctx, identity.IdpCredential{
		ProviderID:  identity.GoogleProviderID,
		IDToken:     tokens.IDToken,
		AccessToken: tokens.AccessToken,
	}, pending.RedirectURI)
	if err != nil {
		s.logger.Error("Google redirect sign-in failed", zap.Error(err))
		return failure(identity.ErrorCode(err))
	}
	if caller.DeviceID == "" {
		caller.DeviceID = pending.DeviceID
	}
	return s.completeSignIn(ctx, session, caller)
}

// SignInWithEmail signs in an email/password user.
func (s *service) SignInWithEmail(ctx context.Context, email, password string, caller Caller) Result {
	session, err := s.identity.SignInWithPassword(ctx, normalizeEmail(email), password)
	if err != nil {
		s.logger.Warn("Email sign-in failed", zap.String("email_hash", crypto.HashString(normalizeEmail(email))), zap.Error(err))
		return failure(identity.ErrorCode(err))
	}
	return s.completeSignIn(ctx, session, caller)
}

// SendMagicLink emails a sign-in link and remembers the address on the caller's device.
func (s *service) SendMagicLink(ctx context.Context, email, continueURL string, caller Caller) Result {
	email = normalizeEmail(email)
	if continueURL == "" {
		continueURL = s.cfg.EmailLinkContinueURL
	}

	if err := s.identity.SendSignInLink(ctx, email, continueURL); err != nil {
		s.logger.Error("Failed to send sign-in link", zap.String("email_hash", crypto.HashString(email)), zap.Error(err))
		return failure(identity.ErrorCode(err))
	}

	// The link is already on its way; completion still works with an explicit email.
	if caller.DeviceID != "" {
		if err := s.devices.Set(ctx, caller.DeviceID, localstore.KeyEmailForSignIn, email, s.cfg.EmailLinkTTL); err != nil {
			s.logger.Warn("Failed to remember email for sign-in", zap.String("device_id", caller.DeviceID), zap.Error(err))
		}
	}
	return Result{Success: true}
}

// CompleteMagicLink signs in with an emailed link. A missing email is read from the device.
func (s *service) CompleteMagicLink(ctx context.Context, email, oobCode string, caller Caller) Result {
	email = normalizeEmail(email)
	if email == "" && caller.DeviceID != "" {
		stored, err := s.devices.Get(ctx, caller.DeviceID, localstore.KeyEmailForSignIn)
		if err != nil && !errors.Is(err, localstore.ErrNotFound) {
			s.logger.Error("Failed to read email for sign-in", zap.Error(err))
			return failure(CodeInternalError)
		}
		email = stored
	}
	if email == "" {
		return failure(CodeMissingEmail)
	}

	session, err := s.identity.SignInWithEmailLink(ctx, email, oobCode)
	if err != nil {
		s.logger.Warn("Email link sign-in failed", zap.String("email_hash", crypto.HashString(email)), zap.Error(err))
		return failure(identity.ErrorCode(err))
	}

	result := s.completeSignIn(ctx, session, caller)
	if result.Success && caller.DeviceID != "" {
		if err := s.devices.Remove(ctx, caller.DeviceID, localstore.KeyEmailForSignIn); err != nil {
			s.logger.Warn("Failed to clear email for sign-in", zap.Error(err))
		}
	}
	return result
}

// SignOutUser revokes every refresh token of uid.
func (s *service) SignOutUser(ctx context.Context, uid string, caller Caller) Result {
	if err := s.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Sign-out failed", zap.String("uid", uid), zap.Error(err))
		return failure(CodeInternalError)
	}
	s.recorder.Record(ctx, analytics.Event{
		Name:     analytics.EventLogout,
		UID:      uid,
		Platform: caller.Platform.Platform,
		IsMobile: caller.Platform.IsMobile,
		DeviceID: caller.DeviceID,
	})
	return Result{Success: true}
}

// State resolves the auth store for an ID token. An empty token is the signed-out state.
func (s *service) State(ctx context.Context, idToken string) StateResponse {
	if idToken == "" {
		return StateResponse{}
	}
	token, err := s.admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return StateResponse{Error: CodeInvalidUserToken}
	}
	record, err := s.admin.GetUser(ctx, token.UID)
	if err != nil {
		s.logger.Warn("Verified token for unknown user", zap.String("uid", token.UID), zap.Error(err))
		return StateResponse{Error: CodeUserNotFound}
	}

	u := &User{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		PhotoURL:      record.PhotoURL,
		EmailVerified: record.EmailVerified,
	}
	if len(record.ProviderUserInfo) > 0 {
		u.ProviderID = record.ProviderUserInfo[0].ProviderID
	}
	return StateResponse{User: u}
}

func (s *service) completeSignIn(ctx context.Context, session *identity.Session, caller Caller) Result {
	created, err := s.users.EnsureUserDocument(ctx, user.Profile{
		UID:         session.UID,
		Email:       session.Email,
		DisplayName: session.DisplayName,
		PhotoURL:    session.PhotoURL,
	})
	if err != nil {
		s.logger.Error("Failed to bootstrap user documents", zap.String("uid", session.UID), zap.Error(err))
		return failure(CodeInternalError)
	}

	isNew := created || session.IsNewUser
	event := analytics.EventLogin
	if isNew {
		event = analytics.EventSignUp
	}
	s.recorder.Record(ctx, analytics.Event{
		Name:      event,
		UID:       session.UID,
		Method:    session.ProviderID,
		Platform:  caller.Platform.Platform,
		IsMobile:  caller.Platform.IsMobile,
		IsNewUser: isNew,
		DeviceID:  caller.DeviceID,
	})

	s.logger.Info("User signed in", zap.String("uid", session.UID), zap.String("provider", session.ProviderID), zap.Bool("new_user", isNew))
	return Result{
		Success: true,
		User:    userFromSession(session, isNew),
		Token: &Token{
			IDToken:      session.IDToken,
			RefreshToken: session.RefreshToken,
			ExpiresIn:    session.ExpiresIn,
		},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

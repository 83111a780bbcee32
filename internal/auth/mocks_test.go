package auth

import (
	"context"
	"time"

	"vibewise_backend/internal/analytics"
	"vibewise_backend/internal/identity"
	"vibewise_backend/internal/user"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/mock"
)

type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	args := m.Called(ctx, email, password)
	return sessionArg(args)
}

func (m *MockIdentityClient) SignInWithIdp(ctx context.Context, cred identity.IdpCredential, requestURI string) (*identity.Session, error) {
	args := m.Called(ctx, cred, requestURI)
	return sessionArg(args)
}

func (m *MockIdentityClient) SendSignInLink(ctx context.Context, email, continueURL string) error {
	return m.Called(ctx, email, continueURL).Error(0)
}

func (m *MockIdentityClient) SignInWithEmailLink(ctx context.Context, email, oobCode string) (*identity.Session, error) {
	args := m.Called(ctx, email, oobCode)
	return sessionArg(args)
}

func sessionArg(args mock.Arguments) (*identity.Session, error) {
	if s := args.Get(0); s != nil {
		return s.(*identity.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGoogleOAuth struct {
	mock.Mock
}

func (m *MockGoogleOAuth) AuthCodeURL(state, redirectURI, verifier string) (string, error) {
	args := m.Called(state, redirectURI, verifier)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuth) Exchange(ctx context.Context, code, redirectURI, verifier string) (*GoogleTokens, error) {
	args := m.Called(ctx, code, redirectURI, verifier)
	if t := args.Get(0); t != nil {
		return t.(*GoogleTokens), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTokenAdmin struct {
	mock.Mock
}

func (m *MockTokenAdmin) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	args := m.Called(ctx, idToken)
	if t := args.Get(0); t != nil {
		return t.(*fbauth.Token), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenAdmin) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockTokenAdmin) GetUser(ctx context.Context, uid string) (*fbauth.UserRecord, error) {
	args := m.Called(ctx, uid)
	if u := args.Get(0); u != nil {
		return u.(*fbauth.UserRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserBootstrapper struct {
	mock.Mock
}

func (m *MockUserBootstrapper) EnsureUserDocument(ctx context.Context, profile user.Profile) (bool, error) {
	args := m.Called(ctx, profile)
	return args.Bool(0), args.Error(1)
}

type MockDeviceStore struct {
	mock.Mock
}

func (m *MockDeviceStore) Get(ctx context.Context, deviceID, key string) (string, error) {
	args := m.Called(ctx, deviceID, key)
	return args.String(0), args.Error(1)
}

func (m *MockDeviceStore) Set(ctx context.Context, deviceID, key, value string, ttl time.Duration) error {
	return m.Called(ctx, deviceID, key, value, ttl).Error(0)
}

func (m *MockDeviceStore) Remove(ctx context.Context, deviceID, key string) error {
	return m.Called(ctx, deviceID, key).Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, event analytics.Event) {
	m.Called(ctx, event)
}

func (m *MockRecorder) Close() {}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vibewise_backend/internal/common"
	"vibewise_backend/internal/device"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SignInWithGoogle(ctx context.Context, req GoogleSignInRequest, caller Caller) Result {
	return m.Called(ctx, req, caller).Get(0).(Result)
}

func (m *MockService) CheckRedirectResult(ctx context.Context, cb RedirectCallback, caller Caller) Result {
	return m.Called(ctx, cb, caller).Get(0).(Result)
}

func (m *MockService) SignInWithEmail(ctx context.Context, email, password string, caller Caller) Result {
	return m.Called(ctx, email, password, caller).Get(0).(Result)
}

func (m *MockService) SendMagicLink(ctx context.Context, email, continueURL string, caller Caller) Result {
	return m.Called(ctx, email, continueURL, caller).Get(0).(Result)
}

func (m *MockService) CompleteMagicLink(ctx context.Context, email, oobCode string, caller Caller) Result {
	return m.Called(ctx, email, oobCode, caller).Get(0).(Result)
}

func (m *MockService) SignOutUser(ctx context.Context, uid string, caller Caller) Result {
	return m.Called(ctx, uid, caller).Get(0).(Result)
}

func (m *MockService) State(ctx context.Context, idToken string) StateResponse {
	return m.Called(ctx, idToken).Get(0).(StateResponse)
}

func setupAuthHandlerTest() (*gin.Engine, *MockService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockService)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(common.DeviceIDKey, "device-1")
		c.Next()
	})
	authMW := func(c *gin.Context) {
		c.Set(common.FirebaseUIDKey, "uid-1")
		c.Next()
	}
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"), authMW)
	return router, svc
}

func doJSON(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_GoogleEmptyBodyStartsRedirect(t *testing.T) {
	router, svc := setupAuthHandlerTest()
	svc.On("SignInWithGoogle", mock.Anything, GoogleSignInRequest{}, mock.MatchedBy(func(c Caller) bool {
		return c.DeviceID == "device-1" && c.Platform.Platform == device.PlatformCapacitor
	})).Return(Result{Success: true, Redirecting: true, RedirectURL: "https://accounts.google.com/x"})

	w := doJSON(router, http.MethodPost, "/api/v1/auth/google", "", map[string]string{device.CapacitorPlatformHeader: "ios"})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Redirecting)
	assert.Equal(t, "https://accounts.google.com/x", body.Data.RedirectURL)
}

func TestHandler_GoogleCallbackQuery(t *testing.T) {
	router, svc := setupAuthHandlerTest()
	svc.On("CheckRedirectResult", mock.Anything, RedirectCallback{Code: "c", State: "s"}, mock.Anything).
		Return(Result{Success: true, User: &User{UID: "uid-g"}})

	w := doJSON(router, http.MethodGet, "/api/v1/auth/google/callback?code=c&state=s", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"uid-g"`)
}

func TestHandler_EmailSignIn(t *testing.T) {
	router, svc := setupAuthHandlerTest()
	svc.On("SignInWithEmail", mock.Anything, "ada@example.com", "secret", mock.Anything).
		Return(Result{Success: false, Error: "auth/wrong-password"})

	w := doJSON(router, http.MethodPost, "/api/v1/auth/email", `{"email":"ada@example.com","password":"secret"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "auth/wrong-password")
}

func TestHandler_EmailSignInValidation(t *testing.T) {
	router, svc := setupAuthHandlerTest()

	w := doJSON(router, http.MethodPost, "/api/v1/auth/email", `{"email":"not-an-email"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	svc.AssertNotCalled(t, "SignInWithEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_MagicLinkFailureIsBadGateway(t *testing.T) {
	router, svc := setupAuthHandlerTest()
	svc.On("SendMagicLink", mock.Anything, "m@example.com", "", mock.Anything).
		Return(Result{Success: false, Error: "auth/internal-error"})

	w := doJSON(router, http.MethodPost, "/api/v1/auth/magic-link", `{"email":"m@example.com"}`, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandler_CompleteMagicLink(t *testing.T) {
	router, svc := setupAuthHandlerTest()
	svc.On("CompleteMagicLink", mock.Anything, "", "oob-1", mock.Anything).Return(Result{Success: true, User: &User{UID: "uid-m"}})

	w := doJSON(router, http.MethodPost, "/api/v1/auth/magic-link/complete", `{"oob_code":"oob-1"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_State(t *testing.T) {
	router, svc := setupAuthHandlerTest()
	svc.On("State", mock.Anything, "tok").Return(StateResponse{User: &User{UID: "uid-1"}})

	w := doJSON(router, http.MethodGet, "/api/v1/auth/state", "", map[string]string{"Authorization": "Bearer tok"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loading":false`)
	assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)
}

func TestHandler_SignOut(t *testing.T) {
	router, svc := setupAuthHandlerTest()
	svc.On("SignOutUser", mock.Anything, "uid-1", mock.Anything).Return(Result{Success: true})

	w := doJSON(router, http.MethodPost, "/api/v1/auth/sign-out", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"vibewise_backend/internal/config"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// GoogleProviderID is the Firebase provider ID for Google sign-in.
const GoogleProviderID = "google.com"

// Session is the result of a successful end-user sign-in.
type Session struct {
	UID          string `json:"uid"`
	Email        string `json:"email,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	PhotoURL     string `json:"photoURL,omitempty"`
	ProviderID   string `json:"providerId,omitempty"`
	IDToken      string `json:"-"`
	RefreshToken string `json:"-"`
	ExpiresIn    int64  `json:"-"`
	IsNewUser    bool   `json:"isNewUser"`
}

// IdpCredential is an OAuth credential obtained from an identity provider.
type IdpCredential struct {
	ProviderID  string
	IDToken     string
	AccessToken string
}

// Client calls the Identity Toolkit REST API on behalf of end users.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a Client from config. FIREBASE_AUTH_EMULATOR_HOST routes calls to the emulator.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	baseURL := defaultBaseURL
	switch {
	case cfg.IdentityToolkitBaseURL != "":
		baseURL = strings.TrimRight(cfg.IdentityToolkitBaseURL, "/")
	case cfg.FirebaseAuthEmulatorHost != "":
		baseURL = "http://" + cfg.FirebaseAuthEmulatorHost + "/identitytoolkit.googleapis.com/v1"
	}
	apiKey := cfg.FirebaseWebAPIKey
	if apiKey == "" {
		// The emulator accepts any key.
		apiKey = "emulator"
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: cfg.IdentityRequestTimeout},
		logger:     logger.Named("identity"),
	}
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoURL     string `json:"photoUrl"`
	ProviderID   string `json:"providerId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	IsNewUser    bool   `json:"isNewUser"`
	// signInWithIdp reports provider-side failures in-band.
	ErrorMessage string `json:"errorMessage"`
}

func (r *signInResponse) session(defaultProvider string) *Session {
	expires, _ := strconv.ParseInt(r.ExpiresIn, 10, 64)
	provider := r.ProviderID
	if provider == "" {
		provider = defaultProvider
	}
	return &Session{
		UID:          r.LocalID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		PhotoURL:     r.PhotoURL,
		ProviderID:   provider,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    expires,
		IsNewUser:    r.IsNewUser,
	}
}

// SignInWithPassword signs in an email/password user.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var resp signInResponse
	err := c.post(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.session("password"), nil
}

// SignInWithIdp exchanges an identity-provider credential for a Firebase session.
// requestURI must be the URI the credential was issued for.
func (c *Client) SignInWithIdp(ctx context.Context, cred IdpCredential, requestURI string) (*Session, error) {
	if cred.IDToken == "" && cred.AccessToken == "" {
		return nil, &Error{HTTPStatus: http.StatusBadRequest, Code: "auth/invalid-credential", Reason: "MISSING_CREDENTIAL"}
	}
	providerID := cred.ProviderID
	if providerID == "" {
		providerID = GoogleProviderID
	}
	postBody := url.Values{}
	postBody.Set("providerId", providerID)
	if cred.IDToken != "" {
		postBody.Set("id_token", cred.IDToken)
	}
	if cred.AccessToken != "" {
		postBody.Set("access_token", cred.AccessToken)
	}

	var resp signInResponse
	err := c.post(ctx, "accounts:signInWithIdp", map[string]interface{}{
		"postBody":            postBody.Encode(),
		"requestUri":          requestURI,
		"returnSecureToken":   true,
		"returnIdpCredential": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.ErrorMessage != "" {
		return nil, newError(http.StatusOK, resp.ErrorMessage)
	}
	return resp.session(providerID), nil
}

// SendSignInLink asks Firebase to email a passwordless sign-in link that continues to continueURL.
func (c *Client) SendSignInLink(ctx context.Context, email, continueURL string) error {
	return c.post(ctx, "accounts:sendOobCode", map[string]interface{}{
		"requestType":        "EMAIL_SIGNIN",
		"email":              email,
		"continueUrl":        continueURL,
		"canHandleCodeInApp": true,
	}, nil)
}

// SignInWithEmailLink completes a passwordless sign-in with the oobCode from the emailed link.
func (c *Client) SignInWithEmailLink(ctx context.Context, email, oobCode string) (*Session, error) {
	var resp signInResponse
	err := c.post(ctx, "accounts:signInWithEmailLink", map[string]interface{}{
		"email":   email,
		"oobCode": oobCode,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.session("emailLink"), nil
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, method string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", c.baseURL, method, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Identity Toolkit request failed", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if res.StatusCode != http.StatusOK {
		var env errorEnvelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Error.Message == "" {
			c.logger.Error("Unexpected Identity Toolkit response", zap.String("method", method), zap.Int("status", res.StatusCode), zap.ByteString("body", raw))
			return &Error{HTTPStatus: res.StatusCode, Code: "auth/internal-error", Reason: http.StatusText(res.StatusCode)}
		}
		idErr := newError(res.StatusCode, env.Error.Message)
		c.logger.Warn("Identity Toolkit rejected request", zap.String("method", method), zap.String("reason", idErr.Reason), zap.String("code", idErr.Code))
		return idErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return nil
}

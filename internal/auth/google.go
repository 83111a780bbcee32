// File: internal/auth/google.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"vibewise_backend/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrGoogleNotConfigured is returned when GOOGLE_CLIENT_ID is unset.
var ErrGoogleNotConfigured = errors.New("google oauth client is not configured")

// GoogleTokens are the tokens a Google authorization code exchanges for.
type GoogleTokens struct {
	IDToken     string
	AccessToken string
}

// GoogleOAuth runs the authorization-code leg of Google sign-in.
type GoogleOAuth interface {
	AuthCodeURL(state, redirectURI, verifier string) (string, error)
	Exchange(ctx context.Context, code, redirectURI, verifier string) (*GoogleTokens, error)
}

type googleOAuth struct {
	clientID     string
	clientSecret string
	endpoint     oauth2.Endpoint
	httpClient   *http.Client
}

// NewGoogleOAuth builds the Google OAuth client from config.
func NewGoogleOAuth(cfg *config.Config) GoogleOAuth {
	return &googleOAuth{
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		endpoint:     google.Endpoint,
		httpClient:   &http.Client{Timeout: cfg.IdentityRequestTimeout},
	}
}

func (g *googleOAuth) config(redirectURI string) (*oauth2.Config, error) {
	if g.clientID == "" {
		return nil, ErrGoogleNotConfigured
	}
	return &oauth2.Config{
		ClientID:     g.clientID,
		ClientSecret: g.clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     g.endpoint,
	}, nil
}

// AuthCodeURL returns the consent URL. The verifier's S256 challenge is attached (PKCE).
func (g *googleOAuth) AuthCodeURL(state, redirectURI, verifier string) (string, error) {
	cfg, err := g.config(redirectURI)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// Exchange trades an authorization code for Google tokens.
func (g *googleOAuth) Exchange(ctx context.Context, code, redirectURI, verifier string) (*GoogleTokens, error) {
	cfg, err := g.config(redirectURI)
	if err != nil {
		return nil, err
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange google auth code: %w", err)
	}

	tokens := &GoogleTokens{AccessToken: token.AccessToken}
	if idToken, ok := token.Extra("id_token").(string); ok {
		tokens.IDToken = idToken
	}
	if tokens.IDToken == "" && tokens.AccessToken == "" {
		return nil, errors.New("google token response carried no usable token")
	}
	return tokens, nil
}

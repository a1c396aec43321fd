package gotrue

// Package gotrue implements the IdentityProvider port against a
// GoTrue-compatible auth backend (the hosted service behind the
// sb-<tenant>-* cookies). Token material stays opaque: every question
// about a session is answered by the backend, never by parsing the
// token locally.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// ProviderConfig holds configuration for the GoTrue provider.
type ProviderConfig struct {
	// BaseURL is the backend base URL, e.g. "https://acme.supabase.co".
	BaseURL string
	// APIKey is the public (anon) API key sent with every request.
	APIKey string
	// HTTPClient is optional and defaults to a 15s-timeout client.
	HTTPClient *http.Client
}

// Provider is a GoTrue REST client implementing ports.IdentityProvider.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewProvider creates a new GoTrue provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gotrue: base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("gotrue: invalid base URL: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gotrue: API key is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Provider{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignIn exchanges email/password credentials for session token material.
func (p *Provider) SignIn(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return domainauth.Session{}, errors.New("gotrue: email and password are required")
	}

	body, err := json.Marshal(map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("gotrue: marshal credentials: %w", err)
	}

	req, err := p.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return domainauth.Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("gotrue: sign in: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return domainauth.Session{}, fmt.Errorf("gotrue: sign in rejected: status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&tok); decodeErr != nil {
		return domainauth.Session{}, fmt.Errorf("gotrue: decode token response: %w", decodeErr)
	}
	if tok.AccessToken == "" {
		return domainauth.Session{}, errors.New("gotrue: token response missing access token")
	}

	return domainauth.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		UserID:       tok.User.ID,
		ExpiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}, nil
}

// SignOut revokes the session behind the access token. Unknown or
// already-revoked tokens are treated as success so termination stays
// idempotent.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	req, err := p.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue: sign out: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK,
		http.StatusUnauthorized, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("gotrue: sign out failed: status %d", resp.StatusCode)
	}
}

// CurrentSession asks the backend whether the access token still names a
// valid session. An invalid or expired token yields (nil, nil); only
// transport-level failures return an error.
func (p *Provider) CurrentSession(ctx context.Context, accessToken string) (*domainauth.Session, error) {
	if accessToken == "" {
		return nil, nil
	}

	user, err := p.fetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &domainauth.Session{
		AccessToken: accessToken,
		UserID:      user.ID,
	}, nil
}

// CurrentUser resolves the identity behind the access token.
func (p *Provider) CurrentUser(ctx context.Context, accessToken string) (*domainauth.Identity, error) {
	user, err := p.fetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &domainauth.Identity{ID: user.ID, Email: user.Email}, nil
}

func (p *Provider) fetchUser(ctx context.Context, accessToken string) (*userResponse, error) {
	if accessToken == "" {
		return nil, nil
	}

	req, err := p.newRequest(ctx, http.MethodGet, "/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotrue: get user: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		var user userResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&user); decodeErr != nil {
			return nil, fmt.Errorf("gotrue: decode user response: %w", decodeErr)
		}
		if user.ID == "" {
			return nil, nil
		}
		return &user, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Invalid token means no session, not a failure.
		return nil, nil
	default:
		return nil, fmt.Errorf("gotrue: get user failed: status %d", resp.StatusCode)
	}
}

func (p *Provider) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("gotrue: build request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)
	return req, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}

package devauth

// Package devauth provides a simple, config-driven IdentityProvider for
// local development. Sessions live in process memory and disappear on
// restart.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// Config controls the dev auth provider behavior.
// UserID and Email are required; Password defaults to "dev".
type Config struct {
	UserID          string
	Email           string
	Password        string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.IdentityProvider for local development.
// Any sign-in with the configured email/password mints a fresh in-memory
// session for the configured identity.
type Provider struct {
	identity        domainauth.Identity
	password        string
	sessionDuration time.Duration

	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	password := cfg.Password
	if password == "" {
		password = "dev"
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{
		identity:        domainauth.Identity{ID: cfg.UserID, Email: cfg.Email},
		password:        password,
		sessionDuration: dur,
		sessions:        make(map[string]domainauth.Session),
	}, nil
}

// SignIn accepts only the configured email/password pair.
func (p *Provider) SignIn(_ context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	if creds.Email != p.identity.Email || creds.Password != p.password {
		return domainauth.Session{}, errors.New("dev auth: invalid credentials")
	}

	token, err := randomString(32)
	if err != nil {
		return domainauth.Session{}, err
	}
	refresh, err := randomString(32)
	if err != nil {
		return domainauth.Session{}, err
	}

	sess := domainauth.Session{
		AccessToken:  token,
		RefreshToken: refresh,
		UserID:       p.identity.ID,
		ExpiresAt:    time.Now().Add(p.sessionDuration),
	}

	p.mu.Lock()
	p.sessions[token] = sess
	p.mu.Unlock()

	return sess, nil
}

// SignOut drops the session. Unknown tokens are a no-op.
func (p *Provider) SignOut(_ context.Context, accessToken string) error {
	p.mu.Lock()
	delete(p.sessions, accessToken)
	p.mu.Unlock()
	return nil
}

// CurrentSession returns the live session behind the token, or (nil, nil)
// when the token is unknown or expired.
func (p *Provider) CurrentSession(_ context.Context, accessToken string) (*domainauth.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sess, ok := p.sessions[accessToken]
	if !ok {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(p.sessions, accessToken)
		return nil, nil
	}
	out := sess
	return &out, nil
}

// CurrentUser returns the configured identity when the token names a live
// session.
func (p *Provider) CurrentUser(ctx context.Context, accessToken string) (*domainauth.Identity, error) {
	sess, err := p.CurrentSession(ctx, accessToken)
	if err != nil || sess == nil {
		return nil, err
	}
	ident := p.identity
	return &ident, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}

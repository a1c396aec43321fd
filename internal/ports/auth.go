package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore.Get when no session
// exists for the given access token.
var ErrSessionNotFound = errors.New("session not found")

// IdentityProvider is the external service that issues and validates
// sessions. The application treats it as opaque: it never inspects token
// material, it only asks the provider questions about it.
type IdentityProvider interface {
	// SignIn exchanges credentials for session token material.
	SignIn(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error)

	// SignOut revokes the session behind the given access token.
	// Revoking an unknown or already-revoked token is not an error.
	SignOut(ctx context.Context, accessToken string) error

	// CurrentSession reports whether the access token still names a valid
	// session. Returns (nil, nil) when there is no session.
	CurrentSession(ctx context.Context, accessToken string) (*domainauth.Session, error)

	// CurrentUser resolves the identity behind the access token.
	CurrentUser(ctx context.Context, accessToken string) (*domainauth.Identity, error)
}

// ProfileStore looks up the application profile row for an authenticated
// identity. The profile carries the role; roles are never inferred from
// the client.
type ProfileStore interface {
	GetProfileByIdentity(ctx context.Context, identityID string) (domainauth.User, error)
}

// BeginInput carries inputs for initiating an SSO auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the SSO code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOProvider initiates and completes a redirect-based login flow against
// an OIDC identity provider. Used for the optional dashboard SSO mode.
type SSOProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists locally minted sessions for the SSO mode, keyed
// by access token. Get returns an error matching ErrSessionNotFound when
// the token names no session.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, accessToken string) (domainauth.Session, error)
	Delete(ctx context.Context, accessToken string) error
}

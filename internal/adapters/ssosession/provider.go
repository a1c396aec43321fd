// Package ssosession adapts a SessionStore into an IdentityProvider for
// the SSO auth mode, where sessions are minted locally after the OIDC
// exchange instead of being issued by a token backend.
package ssosession

import (
	"context"
	"errors"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	"github.com/casaluna/casaluna/internal/ports"
)

// Provider implements ports.IdentityProvider over a session store. The
// access token is the locally minted session key.
type Provider struct {
	sessions ports.SessionStore
}

// NewProvider wraps a session store.
func NewProvider(sessions ports.SessionStore) *Provider {
	return &Provider{sessions: sessions}
}

// SignIn is not supported; SSO sessions are minted by the login callback.
func (p *Provider) SignIn(context.Context, domainauth.Credentials) (domainauth.Session, error) {
	return domainauth.Session{}, errors.New("password sign-in is not available in sso mode")
}

// SignOut drops the local session. Unknown tokens are a no-op.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return p.sessions.Delete(ctx, accessToken)
}

// CurrentSession looks up the local session behind the token.
func (p *Provider) CurrentSession(ctx context.Context, accessToken string) (*domainauth.Session, error) {
	if accessToken == "" {
		return nil, nil
	}
	sess, err := p.sessions.Get(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// CurrentUser returns the identity recorded on the local session. Email is
// not stored with the session; the profile store fills it in.
func (p *Provider) CurrentUser(ctx context.Context, accessToken string) (*domainauth.Identity, error) {
	sess, err := p.CurrentSession(ctx, accessToken)
	if err != nil || sess == nil {
		return nil, err
	}
	return &domainauth.Identity{ID: sess.UserID}, nil
}

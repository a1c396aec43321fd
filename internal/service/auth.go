package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	"github.com/casaluna/casaluna/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
// SSO and Sessions are only set when dashboard sign-in goes through an
// OIDC identity provider; password mode leaves them nil.
type AuthServiceOptions struct {
	Provider       ports.IdentityProvider
	Profiles       ports.ProfileStore
	SSO            ports.SSOProvider
	Sessions       ports.SessionStore
	BackendBaseURL string
	Logger         *slog.Logger
}

// AuthService orchestrates sign-in, session resolution, and session
// termination across the identity provider and the profile store.
type AuthService struct {
	provider       ports.IdentityProvider
	profiles       ports.ProfileStore
	sso            ports.SSOProvider
	sessions       ports.SessionStore
	backendBaseURL string
	tenant         string
	logger         *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider:       opts.Provider,
		profiles:       opts.Profiles,
		sso:            opts.SSO,
		sessions:       opts.Sessions,
		backendBaseURL: opts.BackendBaseURL,
		tenant:         domainauth.TenantRef(opts.BackendBaseURL),
		logger:         logger,
	}
}

// Tenant returns the tenant reference derived from the backend base URL.
func (s *AuthService) Tenant() string { return s.tenant }

// AuthCookieName returns the name of the cookie carrying the access token,
// or "" when no tenant could be derived.
func (s *AuthService) AuthCookieName() string {
	names := domainauth.TenantCookieNames(s.tenant)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// SignIn exchanges credentials for a session with the identity provider.
func (s *AuthService) SignIn(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	sess, err := s.provider.SignIn(ctx, creds)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("sign in: %w", err)
	}
	return sess, nil
}

// CurrentSession resolves the session behind an access token. A missing or
// invalid token yields (nil, nil); transport failures return an error so
// callers can decide how to degrade.
func (s *AuthService) CurrentSession(ctx context.Context, accessToken string) (*domainauth.Session, error) {
	if accessToken == "" {
		return nil, nil
	}
	return s.provider.CurrentSession(ctx, accessToken)
}

// CurrentUser resolves the full user behind an access token. The role is
// always read from the profile record, never from token claims.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domainauth.User, error) {
	ident, err := s.provider.CurrentUser(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if ident == nil {
		return nil, nil
	}

	user, err := s.profiles.GetProfileByIdentity(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user.Email == "" {
		user.Email = ident.Email
	}
	return &user, nil
}

// TerminationResult describes the outcome of terminating a session: the
// full set of cookie deletions to write, and where to send the browser.
type TerminationResult struct {
	Descriptors []domainauth.CookieDescriptor
	RedirectTo  string
}

// Terminate runs the sign-out sequence: best-effort audit of who is signing
// out, best-effort provider revocation, then an exhaustive cookie deletion
// plan. Local cleanup always proceeds regardless of provider failures, so
// calling this twice is safe.
func (s *AuthService) Terminate(ctx context.Context, accessToken, requestHost string, jar []*http.Cookie) TerminationResult {
	if accessToken != "" {
		if ident, err := s.provider.CurrentUser(ctx, accessToken); err != nil {
			s.logger.WarnContext(ctx, "sign-out: identity lookup failed", "error", err)
		} else if ident != nil {
			s.logger.InfoContext(ctx, "sign-out", "identity_id", ident.ID, "email", ident.Email)
		}

		if err := s.provider.SignOut(ctx, accessToken); err != nil {
			s.logger.WarnContext(ctx, "sign-out: provider revocation failed", "error", err)
		}
	}

	// Every cookie in the jar that looks session-related, plus the two
	// tenant-derived names whether or not the browser sent them.
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, c := range jar {
		if domainauth.IsSessionCookieName(c.Name) {
			add(c.Name)
		}
	}
	for _, name := range domainauth.TenantCookieNames(s.tenant) {
		add(name)
	}

	descriptors := domainauth.ResolveDescriptors(domainauth.DescriptorInput{
		Names:          names,
		RequestHost:    requestHost,
		BackendBaseURL: s.backendBaseURL,
	})

	return TerminationResult{
		Descriptors: descriptors,
		RedirectTo:  "/login",
	}
}

// SSO login flow. Only available when an SSOProvider and SessionStore are
// configured.

var errSSONotConfigured = errors.New("sso login is not configured")

// BeginLoginResult contains the result of beginning an SSO login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an SSO flow and returns the provider auth URL with
// state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.sso == nil {
		return nil, errSSONotConfigured
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.sso.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing an SSO login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the authorization code for an identity and mints
// a local session. The session is keyed by a random token that goes into
// the tenant auth cookie, so the termination sweep covers it like any
// provider-issued token.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (domainauth.Session, error) {
	if s.sso == nil || s.sessions == nil {
		return domainauth.Session{}, errSSONotConfigured
	}
	if input.Code == "" {
		return domainauth.Session{}, errors.New("authorization code is required")
	}
	if input.State == "" {
		return domainauth.Session{}, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return domainauth.Session{}, errors.New("nonce parameter is required")
	}

	identity, err := s.sso.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	session := domainauth.Session{
		AccessToken: uuid.NewString(),
		UserID:      identity.ID,
		ExpiresAt:   time.Now().Add(8 * time.Hour),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}

	return session, nil
}

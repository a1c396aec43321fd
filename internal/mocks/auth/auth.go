package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	"github.com/casaluna/casaluna/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityProvider = (*MockIdentityProvider)(nil)
	_ ports.ProfileStore     = (*MemoryProfileStore)(nil)
	_ ports.SSOProvider      = (*MockSSOProvider)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
)

// MockIdentityProvider simulates the token backend for tests. Each method
// can be overridden with a func field; unset methods behave like a backend
// with no sessions.
type MockIdentityProvider struct {
	SignInFunc         func(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error)
	SignOutFunc        func(ctx context.Context, accessToken string) error
	CurrentSessionFunc func(ctx context.Context, accessToken string) (*domainauth.Session, error)
	CurrentUserFunc    func(ctx context.Context, accessToken string) (*domainauth.Identity, error)

	SignOutCalls []string
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, creds)
	}
	return domainauth.Session{}, errors.New("sign in not configured")
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	m.SignOutCalls = append(m.SignOutCalls, accessToken)
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, accessToken)
	}
	return nil
}

func (m *MockIdentityProvider) CurrentSession(ctx context.Context, accessToken string) (*domainauth.Session, error) {
	if m.CurrentSessionFunc != nil {
		return m.CurrentSessionFunc(ctx, accessToken)
	}
	return nil, nil
}

func (m *MockIdentityProvider) CurrentUser(ctx context.Context, accessToken string) (*domainauth.Identity, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, accessToken)
	}
	return nil, nil
}

// MemoryProfileStore serves profiles from a map keyed by identity ID.
type MemoryProfileStore struct {
	Profiles map[string]domainauth.User
}

// NewMemoryProfileStore creates a profile store seeded with the given users.
func NewMemoryProfileStore(users ...domainauth.User) *MemoryProfileStore {
	profiles := make(map[string]domainauth.User, len(users))
	for _, u := range users {
		profiles[u.ID] = u
	}
	return &MemoryProfileStore{Profiles: profiles}
}

func (m *MemoryProfileStore) GetProfileByIdentity(_ context.Context, identityID string) (domainauth.User, error) {
	user, ok := m.Profiles[identityID]
	if !ok {
		return domainauth.User{}, fmt.Errorf("profile %q: %w", identityID, ErrNotFound)
	}
	return user, nil
}

// MockSSOProvider simulates an IdP for tests with deterministic state/nonce
// handling.
type MockSSOProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL         string
	DefaultIdentity domainauth.Identity

	callCount int
}

// NewMockSSOProvider creates a MockSSOProvider with sensible defaults.
func NewMockSSOProvider() *MockSSOProvider {
	return &MockSSOProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultIdentity: domainauth.Identity{
			ID:    "mock-user-1",
			Email: "mock.user@casaluna.example",
		},
	}
}

func (m *MockSSOProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	state := fmt.Sprintf("state-%d", m.callCount)
	nonce := fmt.Sprintf("nonce-%d", m.callCount)
	return authURL, state, nonce, nil
}

func (m *MockSSOProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	return m.DefaultIdentity, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	Sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		Sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.AccessToken == "" {
		return errors.New("session access token cannot be empty")
	}
	m.Sessions[sess.AccessToken] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, accessToken string) (domainauth.Session, error) {
	sess, ok := m.Sessions[accessToken]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, accessToken string) error {
	delete(m.Sessions, accessToken)
	return nil
}

// ErrNotFound is returned by mocks when an entity is not present.
var ErrNotFound = errors.New("not found")

package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	mockauth "github.com/casaluna/casaluna/internal/mocks/auth"
)

const testBackendBaseURL = "https://acme.authhost.example"

func newTestAuthService(provider *mockauth.MockIdentityProvider, profiles *mockauth.MemoryProfileStore) *AuthService {
	if profiles == nil {
		profiles = mockauth.NewMemoryProfileStore()
	}
	return NewAuthService(AuthServiceOptions{
		Provider:       provider,
		Profiles:       profiles,
		BackendBaseURL: testBackendBaseURL,
		Logger:         slog.New(slog.DiscardHandler),
	})
}

func TestAuthService_TenantCookie(t *testing.T) {
	svc := newTestAuthService(&mockauth.MockIdentityProvider{}, nil)
	assert.Equal(t, "acme", svc.Tenant())
	assert.Equal(t, "sb-acme-auth-token", svc.AuthCookieName())
}

func TestAuthService_CurrentUser_RoleFromProfile(t *testing.T) {
	provider := &mockauth.MockIdentityProvider{
		CurrentUserFunc: func(_ context.Context, accessToken string) (*domainauth.Identity, error) {
			if accessToken != "at-1" {
				return nil, nil
			}
			return &domainauth.Identity{ID: "ident-1", Email: "chef@casaluna.example"}, nil
		},
	}
	profiles := mockauth.NewMemoryProfileStore(domainauth.User{
		ID:   "ident-1",
		Role: domainauth.RoleAdmin,
	})
	svc := newTestAuthService(provider, profiles)

	user, err := svc.CurrentUser(context.Background(), "at-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, domainauth.RoleAdmin, user.Role)
	// Email falls back to the identity when the profile has none.
	assert.Equal(t, "chef@casaluna.example", user.Email)

	user, err = svc.CurrentUser(context.Background(), "stale")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthService_CurrentUser_MissingProfile(t *testing.T) {
	provider := &mockauth.MockIdentityProvider{
		CurrentUserFunc: func(context.Context, string) (*domainauth.Identity, error) {
			return &domainauth.Identity{ID: "ident-unknown"}, nil
		},
	}
	svc := newTestAuthService(provider, nil)

	_, err := svc.CurrentUser(context.Background(), "at-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, mockauth.ErrNotFound)
}

func TestAuthService_Terminate_SweepsJarAndTenantNames(t *testing.T) {
	provider := &mockauth.MockIdentityProvider{}
	svc := newTestAuthService(provider, nil)

	jar := []*http.Cookie{
		{Name: "sb-acme-auth-token", Value: "at"},
		{Name: "sb-acme-auth-token.0", Value: "chunk"},
		{Name: "legacy-refresh-token", Value: "rt"},
		{Name: "theme", Value: "dark"},
	}

	result := svc.Terminate(context.Background(), "at-1", "www.casaluna.example", jar)
	assert.Equal(t, "/login", result.RedirectTo)
	assert.Equal(t, []string{"at-1"}, provider.SignOutCalls)

	names := make(map[string]bool)
	domains := make(map[string]bool)
	for _, d := range result.Descriptors {
		names[d.Name] = true
		domains[d.Domain] = true
		assert.Equal(t, "/", d.Path)
	}

	// Jar cookies that look session-related, plus both tenant-derived names.
	assert.True(t, names["sb-acme-auth-token"])
	assert.True(t, names["sb-acme-auth-token.0"])
	assert.True(t, names["legacy-refresh-token"])
	assert.True(t, names["sb-acme-refresh-token"])
	assert.False(t, names["theme"])

	assert.True(t, domains[""])
	assert.True(t, domains["www.casaluna.example"])
	assert.True(t, domains["authhost.example"])
	assert.True(t, domains["localhost"])
	assert.True(t, domains["127.0.0.1"])

	// 4 names x 5 domains x 4 attribute combinations.
	assert.Len(t, result.Descriptors, 80)
}

func TestAuthService_Terminate_ProviderFailureStillSweeps(t *testing.T) {
	provider := &mockauth.MockIdentityProvider{
		SignOutFunc: func(context.Context, string) error {
			return errors.New("backend unreachable")
		},
		CurrentUserFunc: func(context.Context, string) (*domainauth.Identity, error) {
			return nil, errors.New("backend unreachable")
		},
	}
	svc := newTestAuthService(provider, nil)

	result := svc.Terminate(context.Background(), "at-1", "www.casaluna.example", nil)
	assert.Equal(t, "/login", result.RedirectTo)
	assert.NotEmpty(t, result.Descriptors)
}

func TestAuthService_Terminate_Idempotent(t *testing.T) {
	provider := &mockauth.MockIdentityProvider{}
	svc := newTestAuthService(provider, nil)

	first := svc.Terminate(context.Background(), "", "www.casaluna.example", nil)
	second := svc.Terminate(context.Background(), "", "www.casaluna.example", nil)
	assert.Equal(t, first, second)
	// No token, no provider call.
	assert.Empty(t, provider.SignOutCalls)
}

func TestAuthService_SSOLogin(t *testing.T) {
	sso := mockauth.NewMockSSOProvider()
	sessions := mockauth.NewMemorySessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Provider:       &mockauth.MockIdentityProvider{},
		Profiles:       mockauth.NewMemoryProfileStore(),
		SSO:            sso,
		Sessions:       sessions,
		BackendBaseURL: testBackendBaseURL,
		Logger:         slog.New(slog.DiscardHandler),
	})

	begin, err := svc.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", begin.AuthURL)
	assert.NotEmpty(t, begin.State)
	assert.NotEmpty(t, begin.Nonce)

	sess, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "code-1",
		State: begin.State,
		Nonce: begin.Nonce,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, "mock-user-1", sess.UserID)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	stored, err := sessions.Get(context.Background(), sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, stored.UserID)
}

func TestAuthService_SSOLogin_NotConfigured(t *testing.T) {
	svc := newTestAuthService(&mockauth.MockIdentityProvider{}, nil)

	_, err := svc.BeginLogin(context.Background(), "http://localhost/cb")
	assert.Error(t, err)

	_, err = svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "c", State: "s", Nonce: "n",
	})
	assert.Error(t, err)
}

func TestAuthService_CompleteLogin_Validation(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Provider:       &mockauth.MockIdentityProvider{},
		Profiles:       mockauth.NewMemoryProfileStore(),
		SSO:            mockauth.NewMockSSOProvider(),
		Sessions:       mockauth.NewMemorySessionStore(),
		BackendBaseURL: testBackendBaseURL,
		Logger:         slog.New(slog.DiscardHandler),
	})

	tests := []struct {
		name  string
		input CompleteLoginInput
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteLogin(context.Background(), tt.input)
			assert.Error(t, err)
		})
	}
}

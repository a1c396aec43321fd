package httpx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaluna/casaluna/internal/adapters/ssosession"
	mockauth "github.com/casaluna/casaluna/internal/mocks/auth"
	"github.com/casaluna/casaluna/internal/service"
)

// newSSOTestHandlers wires the full SSO stack: the mock IdP, an in-memory
// session store, and the session-store-backed identity provider.
func newSSOTestHandlers() (*AuthHandlers, *mockauth.MemorySessionStore) {
	sessions := mockauth.NewMemorySessionStore()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Provider:       ssosession.NewProvider(sessions),
		Profiles:       mockauth.NewMemoryProfileStore(),
		SSO:            mockauth.NewMockSSOProvider(),
		Sessions:       sessions,
		BackendBaseURL: testBackendBaseURL,
		Logger:         slog.New(slog.DiscardHandler),
	})
	return &AuthHandlers{Svc: svc, Logger: slog.New(slog.DiscardHandler)}, sessions
}

func TestSSOLogin_RedirectsToProvider(t *testing.T) {
	h, _ := newSSOTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/login?redirect_uri=/dashboard-menu", nil)
	rec := httptest.NewRecorder()
	h.SSOLogin(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://mock-idp/auth", rec.Header().Get("Location"))

	byName := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		byName[c.Name] = c
	}
	require.Contains(t, byName, "oauth_state")
	require.Contains(t, byName, "oauth_nonce")
	require.Contains(t, byName, "post_login_redirect")
	assert.Equal(t, "state-1", byName["oauth_state"].Value)
	assert.Equal(t, "/dashboard-menu", byName["post_login_redirect"].Value)
}

func TestSSOCallback_CompletesLogin(t *testing.T) {
	h, sessions := newSSOTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?code=abc&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "nonce-1"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/dashboard-menu"})
	rec := httptest.NewRecorder()
	h.SSOCallback(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard-menu", rec.Header().Get("Location"))

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sb-acme-auth-token" && c.Value != "" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token, "tenant auth cookie must carry the minted session token")

	sess, ok := sessions.Sessions[token]
	require.True(t, ok, "minted session must be persisted")
	assert.Equal(t, "mock-user-1", sess.UserID)
}

func TestSSOCallback_StateMismatch(t *testing.T) {
	h, _ := newSSOTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "nonce-1"})
	rec := httptest.NewRecorder()
	h.SSOCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_state")
}

func TestSSOCallback_MissingParams(t *testing.T) {
	h, _ := newSSOTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/auth/sso/callback?state=state-1", nil)
	rec := httptest.NewRecorder()
	h.SSOCallback(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/sso/callback?code=abc", nil)
	rec = httptest.NewRecorder()
	h.SSOCallback(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	mockauth "github.com/casaluna/casaluna/internal/mocks/auth"
	"github.com/casaluna/casaluna/internal/ports"
	"github.com/casaluna/casaluna/internal/service"
)

const (
	testBackendBaseURL = "https://acme.authhost.example"
	testAuthCookie     = "sb-acme-auth-token"
)

// newTestAuthService builds a real auth service over test doubles so the
// middleware and handlers run against the same code paths as production.
func newTestAuthService(provider ports.IdentityProvider, profiles ports.ProfileStore) *service.AuthService {
	if profiles == nil {
		profiles = mockauth.NewMemoryProfileStore()
	}
	return service.NewAuthService(service.AuthServiceOptions{
		Provider:       provider,
		Profiles:       profiles,
		BackendBaseURL: testBackendBaseURL,
		Logger:         slog.New(slog.DiscardHandler),
	})
}

// providerWithUser returns an identity provider that recognizes exactly one
// access token.
func providerWithUser(token string, identity domainauth.Identity) *mockauth.MockIdentityProvider {
	return &mockauth.MockIdentityProvider{
		CurrentSessionFunc: func(_ context.Context, got string) (*domainauth.Session, error) {
			if got == token {
				return &domainauth.Session{
					AccessToken: token,
					UserID:      identity.ID,
					ExpiresAt:   time.Now().Add(time.Hour),
				}, nil
			}
			return nil, nil
		},
		CurrentUserFunc: func(_ context.Context, got string) (*domainauth.Identity, error) {
			if got == token {
				ident := identity
				return &ident, nil
			}
			return nil, nil
		},
	}
}

// doRequest runs a request through the handler and returns the recorder.
func doRequest(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// okHandler records whether it was reached.
type okHandler struct {
	called bool
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.called = true
	w.WriteHeader(http.StatusOK)
}

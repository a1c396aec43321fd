package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	mockauth "github.com/casaluna/casaluna/internal/mocks/auth"
)

func TestRequireAuth_Success(t *testing.T) {
	provider := providerWithUser("tok-1", domainauth.Identity{ID: "u1", Email: "u1@casaluna.example"})
	profiles := mockauth.NewMemoryProfileStore(domainauth.User{ID: "u1", Role: domainauth.RoleUser})
	svc := newTestAuthService(provider, profiles)

	var got *domainauth.User
	handler := RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req.AddCookie(&http.Cookie{Name: testAuthCookie, Value: "tok-1"})
	rec := doRequest(handler, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}

func TestRequireAuth_MissingTokenReturns401(t *testing.T) {
	svc := newTestAuthService(&mockauth.MockIdentityProvider{}, nil)
	next := &okHandler{}
	handler := RequireAuth(svc)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := doRequest(handler, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestRequireAuth_BearerFallback(t *testing.T) {
	provider := providerWithUser("tok-1", domainauth.Identity{ID: "u1"})
	profiles := mockauth.NewMemoryProfileStore(domainauth.User{ID: "u1", Role: domainauth.RoleUser})
	svc := newTestAuthService(provider, profiles)
	next := &okHandler{}
	handler := RequireAuth(svc)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := doRequest(handler, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
}

func TestRequireRole_Table(t *testing.T) {
	tests := []struct {
		name     string
		userRole domainauth.Role
		required domainauth.Role
		want     int
	}{
		{name: "admin meets admin", userRole: domainauth.RoleAdmin, required: domainauth.RoleAdmin, want: http.StatusOK},
		{name: "superadmin meets admin", userRole: domainauth.RoleSuperadmin, required: domainauth.RoleAdmin, want: http.StatusOK},
		{name: "user below admin", userRole: domainauth.RoleUser, required: domainauth.RoleAdmin, want: http.StatusForbidden},
		{name: "admin below superadmin", userRole: domainauth.RoleAdmin, required: domainauth.RoleSuperadmin, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := providerWithUser("tok-1", domainauth.Identity{ID: "u1"})
			profiles := mockauth.NewMemoryProfileStore(domainauth.User{ID: "u1", Role: tt.userRole})
			svc := newTestAuthService(provider, profiles)
			handler := RequireRole(svc, tt.required)(&okHandler{})

			req := httptest.NewRequest(http.MethodPost, "/api/menu", nil)
			req.AddCookie(&http.Cookie{Name: testAuthCookie, Value: "tok-1"})
			rec := doRequest(handler, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRole_UnauthenticatedReturns401(t *testing.T) {
	svc := newTestAuthService(&mockauth.MockIdentityProvider{}, nil)
	handler := RequireRole(svc, domainauth.RoleAdmin)(&okHandler{})

	req := httptest.NewRequest(http.MethodPost, "/api/menu", nil)
	rec := doRequest(handler, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_MissingProfileReturns401(t *testing.T) {
	// The identity exists at the provider but has no profile row; role can
	// never be determined, so the request is unauthenticated.
	provider := providerWithUser("tok-1", domainauth.Identity{ID: "ghost"})
	svc := newTestAuthService(provider, mockauth.NewMemoryProfileStore())
	handler := RequireRole(svc, domainauth.RoleAdmin)(&okHandler{})

	req := httptest.NewRequest(http.MethodPost, "/api/menu", nil)
	req.AddCookie(&http.Cookie{Name: testAuthCookie, Value: "tok-1"})
	rec := doRequest(handler, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

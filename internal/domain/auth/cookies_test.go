package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantRef(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{"https://acme.supabase.co", "acme"},
		{"https://acme.supabase.co/auth/v1", "acme"},
		{"http://acme.supabase.co:8443", "acme"},
		{"https://supabase", ""},
		{"", ""},
		{"::not a url::", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TenantRef(tt.baseURL), "baseURL %q", tt.baseURL)
	}
}

func TestTenantCookieNames(t *testing.T) {
	assert.Equal(t,
		[]string{"sb-acme-auth-token", "sb-acme-refresh-token"},
		TenantCookieNames("acme"))
	assert.Nil(t, TenantCookieNames(""))
}

func TestIsSessionCookieName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sb-acme-auth-token", true},
		{"sb-acme-auth-token.0", true}, // chunked variant still matches by prefix
		{"sb-acme-refresh-token", true},
		{"legacy-auth-token", true},
		{"my-refresh-token", true},
		{"theme", false},
		{"csrf", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSessionCookieName(tt.name), "name %q", tt.name)
	}
}

func TestResolveDescriptors_CrossProduct(t *testing.T) {
	got := ResolveDescriptors(DescriptorInput{
		Names:          []string{"sb-acme-auth-token"},
		RequestHost:    "www.casaluna.example:8080",
		BackendBaseURL: "https://acme.authhost.example",
	})

	// 5 domains (host-only, bare host, apex, localhost, 127.0.0.1) x 4
	// attribute pairs.
	require.Len(t, got, 20)

	domains := map[string]bool{}
	for _, d := range got {
		assert.Equal(t, "sb-acme-auth-token", d.Name)
		assert.Equal(t, "/", d.Path)
		domains[d.Domain] = true
	}
	assert.Equal(t, map[string]bool{
		"":                     true,
		"www.casaluna.example": true,
		"authhost.example":     true,
		"localhost":            true,
		"127.0.0.1":            true,
	}, domains)

	// Every (secure, samesite) pairing must appear for every domain,
	// including the defensive samesite=none without secure.
	for domain := range domains {
		for _, attr := range attributeMatrix {
			assert.Contains(t, got, CookieDescriptor{
				Name:     "sb-acme-auth-token",
				Domain:   domain,
				Path:     "/",
				Secure:   attr.Secure,
				SameSite: attr.SameSite,
			})
		}
	}
}

// The descriptor set must cover the exact combination the application
// uses when it sets a session cookie itself (host-only, secure, lax).
func TestResolveDescriptors_SupersetOfAppSetCookie(t *testing.T) {
	got := ResolveDescriptors(DescriptorInput{
		Names:          []string{"sb-acme-auth-token"},
		RequestHost:    "casaluna.example",
		BackendBaseURL: "https://acme.supabase.co",
	})

	assert.Contains(t, got, CookieDescriptor{
		Name: "sb-acme-auth-token", Domain: "", Path: "/", Secure: true, SameSite: SameSiteLax,
	})
	assert.Contains(t, got, CookieDescriptor{
		Name: "sb-acme-auth-token", Domain: "casaluna.example", Path: "/", Secure: false, SameSite: SameSiteLax,
	})
}

func TestResolveDescriptors_LocalhostDedup(t *testing.T) {
	got := ResolveDescriptors(DescriptorInput{
		Names:          []string{"sb-acme-auth-token", "sb-acme-refresh-token"},
		RequestHost:    "localhost:3000",
		BackendBaseURL: "http://localhost:54321",
	})

	// Bare host collapses into "localhost" and the backend has no apex
	// domain, leaving 3 domains x 4 attrs x 2 names.
	require.Len(t, got, 24)
	seen := map[CookieDescriptor]int{}
	for _, d := range got {
		seen[d]++
	}
	for d, n := range seen {
		assert.Equal(t, 1, n, "duplicate descriptor %+v", d)
	}
}

func TestResolveDescriptors_EmptyNames(t *testing.T) {
	assert.Empty(t, ResolveDescriptors(DescriptorInput{
		Names:       []string{"", ""},
		RequestHost: "localhost",
	}))
}

func TestApexDomain(t *testing.T) {
	assert.Equal(t, "authhost.example", ApexDomain("https://acme.authhost.example"))
	assert.Equal(t, "", ApexDomain("http://127.0.0.1:54321"))
	assert.Equal(t, "", ApexDomain("http://localhost:54321"))
	assert.Equal(t, "", ApexDomain(""))
}

func TestBareHost(t *testing.T) {
	assert.Equal(t, "casaluna.example", BareHost("casaluna.example:443"))
	assert.Equal(t, "casaluna.example", BareHost("casaluna.example"))
	assert.Equal(t, "", BareHost(""))
}

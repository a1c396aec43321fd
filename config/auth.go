package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeSupabase uses the hosted token backend's password grant.
	AuthModeSupabase AuthMode = "supabase"
	// AuthModeOIDC uses OIDC single sign-on with a local session store.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "supabase", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: supabase, oidc, mock)", v)
	}
}

// SupabaseConfig contains the hosted token backend configuration. BaseURL is
// tenant-scoped ("https://<tenant>.supabase.co"); the tenant reference and
// the session cookie names are derived from it.
type SupabaseConfig struct {
	BaseURL string `env:"URL,required"`
	AnonKey string `env:"ANON_KEY,required"`
}

// OIDCConfig contains OIDC/SSO configuration (used when Mode=oidc).
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"casaluna"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"casaluna"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID   string `env:"USER_ID"  envDefault:"dev-user"`
	Email    string `env:"EMAIL"    envDefault:"dev@casaluna.example"`
	Password string `env:"PASSWORD" envDefault:"dev"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"supabase"`

	// Supabase configuration (used when Mode=supabase; the BaseURL also
	// feeds the cookie descriptor table in every mode, so it stays
	// required).
	Supabase SupabaseConfig `envPrefix:"SUPABASE_"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

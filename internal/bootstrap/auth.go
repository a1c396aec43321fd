package bootstrap

import (
	"log/slog"

	"github.com/casaluna/casaluna/config"
	"github.com/casaluna/casaluna/internal/adapters/devauth"
	"github.com/casaluna/casaluna/internal/adapters/gotrue"
	"github.com/casaluna/casaluna/internal/adapters/oidc"
	"github.com/casaluna/casaluna/internal/adapters/ssosession"
	"github.com/casaluna/casaluna/internal/ports"
	"github.com/casaluna/casaluna/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth     config.AuthConfig
	Profiles ports.ProfileStore
	// Sessions backs locally minted SSO sessions. Required for AuthModeOIDC,
	// ignored by the other modes.
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// BuildAuthService creates an auth service for the configured auth mode.
// Returns nil if the mode's required configuration is missing or invalid;
// the API then runs with authenticated routes disabled.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Auth.Mode {
	case config.AuthModeSupabase:
		return buildSupabaseAuthService(cfg, logger)

	case config.AuthModeOIDC:
		return buildOIDCAuthService(cfg, logger)

	case config.AuthModeMock:
		return buildDevAuthService(cfg, logger)

	default:
		logger.Warn("unknown auth mode, auth disabled", "mode", cfg.Auth.Mode)
		return nil
	}
}

func buildSupabaseAuthService(cfg AuthConfig, logger *slog.Logger) *service.AuthService {
	prov, err := gotrue.NewProvider(gotrue.ProviderConfig{
		BaseURL: cfg.Auth.Supabase.BaseURL,
		APIKey:  cfg.Auth.Supabase.AnonKey,
	})
	if err != nil {
		logger.Warn("failed to create token backend provider, auth disabled", "error", err)
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:       prov,
		Profiles:       cfg.Profiles,
		BackendBaseURL: cfg.Auth.Supabase.BaseURL,
		Logger:         logger,
	})
}

func buildOIDCAuthService(cfg AuthConfig, logger *slog.Logger) *service.AuthService {
	if cfg.Sessions == nil {
		logger.Warn("oidc mode requires a session store, auth disabled")
		return nil
	}

	oauth := cfg.Auth.OIDC
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		logger.Warn("oidc mode selected but required config missing, auth disabled",
			"discovery_url_empty", oauth.DiscoveryURL == "",
			"client_id_empty", oauth.ClientID == "",
			"client_secret_empty", oauth.ClientSecret == "",
		)
		return nil
	}

	sso, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
	})
	if err != nil {
		logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:       ssosession.NewProvider(cfg.Sessions),
		Profiles:       cfg.Profiles,
		SSO:            sso,
		Sessions:       cfg.Sessions,
		BackendBaseURL: cfg.Auth.Supabase.BaseURL,
		Logger:         logger,
	})
}

func buildDevAuthService(cfg AuthConfig, logger *slog.Logger) *service.AuthService {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:   cfg.Auth.DevAuth.UserID,
		Email:    cfg.Auth.DevAuth.Email,
		Password: cfg.Auth.DevAuth.Password,
		// session duration defaults inside provider
	})
	if err != nil {
		logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:       prov,
		Profiles:       cfg.Profiles,
		BackendBaseURL: cfg.Auth.Supabase.BaseURL,
		Logger:         logger,
	})
}

package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/casaluna/casaluna/config"
	redisadapter "github.com/casaluna/casaluna/internal/adapters/redis"
	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Menu     *service.MenuService
	FAQ      *service.FAQService
	News     *service.NewsService
	Settings *service.SettingsService
	Site     *service.SiteService
	Auth     *service.AuthService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	DB     *data.DB
	// SessionRedis backs SSO sessions; only required for AuthModeOIDC.
	SessionRedis redis.UniversalClient
	// CacheRedis backs the rendered site payload cache. Optional; the
	// payload is rebuilt from the database when nil.
	CacheRedis redis.UniversalClient
	Logger     *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Menu     *data.MenuRepo
	FAQ      *data.FAQRepo
	News     *data.NewsRepo
	Settings *data.SettingsRepo
	Profiles *data.ProfileRepo
}

func buildRepositories(db *data.DB) serviceRepositories {
	return serviceRepositories{
		Menu:     data.NewMenuRepo(db),
		FAQ:      data.NewFAQRepo(db),
		News:     data.NewNewsRepo(db),
		Settings: data.NewSettingsRepo(db),
		Profiles: data.NewProfileRepo(db),
	}
}

// NewServices wires repositories, caches, and the auth provider into the
// application service container.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB)

	var payloadCache service.PayloadCache
	if deps.CacheRedis != nil {
		payloadCache = redisadapter.NewContentCache(deps.CacheRedis, appCfg.Cache.PayloadTTL)
	}

	var sessionStore *redisadapter.SessionStore
	if deps.SessionRedis != nil {
		sessionStore = redisadapter.NewSessionStoreWithPrefix(deps.SessionRedis, "session:")
	}

	authCfg := AuthConfig{
		Auth:     appCfg.Auth,
		Profiles: repos.Profiles,
		Logger:   logger,
	}
	if sessionStore != nil {
		authCfg.Sessions = sessionStore
	}

	return ServiceContainer{
		Menu:     service.NewMenuService(service.MenuServiceOptions{Repo: repos.Menu}),
		FAQ:      service.NewFAQService(service.FAQServiceOptions{Repo: repos.FAQ}),
		News:     service.NewNewsService(service.NewsServiceOptions{Repo: repos.News}),
		Settings: service.NewSettingsService(service.SettingsServiceOptions{Repo: repos.Settings}),
		Site: service.NewSiteService(service.SiteServiceOptions{
			Menu:     repos.Menu,
			FAQ:      repos.FAQ,
			News:     repos.News,
			Settings: repos.Settings,
			Cache:    payloadCache,
			Logger:   logger,
		}),
		Auth: BuildAuthService(authCfg),
	}
}

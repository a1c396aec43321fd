package httpx

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
	"github.com/casaluna/casaluna/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Menu     *service.MenuService
	FAQ      *service.FAQService
	News     *service.NewsService
	Settings *service.SettingsService
	Site     *service.SiteService
	Auth     AuthServiceInterface
	// Guard configures which page routes require a session.
	Guard GuardConfig
	// StaticDir is the built frontend bundle served for page routes.
	// When empty the server still guards page paths but serves a 404 shell.
	StaticDir string
	Logger    *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	menuHandlers := &MenuHandlers{Svc: services.Menu, Site: services.Site}
	faqHandlers := &FAQHandlers{Svc: services.FAQ, Site: services.Site}
	newsHandlers := &NewsHandlers{Svc: services.News, Site: services.Site}
	settingsHandlers := &SettingsHandlers{Svc: services.Settings, Site: services.Site}
	siteHandlers := &SiteHandlers{Svc: services.Site}

	registerMenuRoutes(mux, menuHandlers, services.Auth)
	registerFAQRoutes(mux, faqHandlers, services.Auth)
	registerNewsRoutes(mux, newsHandlers, services.Auth)
	registerSettingsRoutes(mux, settingsHandlers, services.Auth)
	mux.HandleFunc("GET /api/site", siteHandlers.Payload)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.Auth != nil {
		authHandlers := &AuthHandlers{Svc: services.Auth, Logger: services.Logger}
		registerAuthRoutes(mux, authHandlers)
	}

	// Page routes: the built frontend, guarded on session presence.
	mux.Handle("GET /", pageHandler(services.StaticDir))

	if services.Auth == nil {
		return mux
	}
	return RouteGuard(services.Auth, services.Guard)(mux)
}

// crudRoutes registers standard CRUD routes for a resource base path.
// Reads stay open; writes go through WriteMiddleware when set.
type crudRoutes struct {
	Base            string
	Create          http.HandlerFunc
	List            http.HandlerFunc
	GetByID         http.HandlerFunc
	Update          http.HandlerFunc
	Delete          http.HandlerFunc
	WriteMiddleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.WriteMiddleware != nil {
			return cfg.WriteMiddleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.HandleFunc("GET "+cfg.Base, cfg.List)
	mux.HandleFunc("GET "+cfg.Base+"/{id}", cfg.GetByID)
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}

// adminOnly returns the write gate for content routes, nil-safe for tests
// that run without an auth service.
func adminOnly(auth AuthServiceInterface) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		if auth != nil {
			return RequireRole(auth, domainauth.RoleAdmin)(h)
		}
		return h
	}
}

func registerMenuRoutes(mux *http.ServeMux, h *MenuHandlers, auth AuthServiceInterface) {
	registerCRUD(mux, crudRoutes{
		Base:            "/api/menu",
		Create:          h.Create,
		List:            h.List,
		GetByID:         h.GetByID,
		Update:          h.Update,
		Delete:          h.Delete,
		WriteMiddleware: adminOnly(auth),
	})
}

func registerFAQRoutes(mux *http.ServeMux, h *FAQHandlers, auth AuthServiceInterface) {
	registerCRUD(mux, crudRoutes{
		Base:            "/api/faq",
		Create:          h.Create,
		List:            h.List,
		GetByID:         h.GetByID,
		Update:          h.Update,
		Delete:          h.Delete,
		WriteMiddleware: adminOnly(auth),
	})
}

func registerNewsRoutes(mux *http.ServeMux, h *NewsHandlers, auth AuthServiceInterface) {
	registerCRUD(mux, crudRoutes{
		Base:            "/api/news",
		Create:          h.Create,
		List:            h.List,
		GetByID:         h.GetByID,
		Update:          h.Update,
		Delete:          h.Delete,
		WriteMiddleware: adminOnly(auth),
	})
}

// registerSettingsRoutes wires the settings key/value routes. Settings are
// dashboard material, so even reads require authentication; writes require
// admin and the handler itself raises the bar to superadmin for feature
// toggles.
func registerSettingsRoutes(mux *http.ServeMux, h *SettingsHandlers, auth AuthServiceInterface) {
	authed := func(hh http.Handler) http.Handler {
		if auth != nil {
			return RequireAuth(auth)(hh)
		}
		return hh
	}
	admin := adminOnly(auth)

	mux.Handle("GET /api/settings", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/settings/{key}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/settings/{key}", admin(http.HandlerFunc(h.Upsert)))
	mux.Handle("DELETE /api/settings/{key}", admin(http.HandlerFunc(h.Delete)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("GET /auth/sso/login", h.SSOLogin)
	mux.HandleFunc("GET /auth/sso/callback", h.SSOCallback)
}

// pageHandler serves the built frontend from disk. Paths without a file
// extension fall back to index.html so client-side routing works.
func pageHandler(staticDir string) http.Handler {
	if staticDir == "" {
		return http.NotFoundHandler()
	}

	fileServer := http.FileServer(http.Dir(staticDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) != "" {
			fileServer.ServeHTTP(w, r)
			return
		}

		candidate := filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(r.URL.Path, "/")))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
}

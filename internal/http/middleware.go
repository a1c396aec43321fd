package httpx

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// Logging returns a middleware that assigns each request an ID and logs the
// request and response. The ID is echoed in the X-Request-Id header and made
// available through RequestIDFromContext.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r.WithContext(ctx))
			logger.Info("http",
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// GuardConfig describes which page paths require an authenticated session.
// Protection is configuration data, not routing logic.
type GuardConfig struct {
	// Protected paths require a valid session. Each entry matches itself and
	// anything nested under it ("/dashboard" covers "/dashboard/menu").
	Protected []string
	// LoginPath is where unauthenticated requests to protected paths are
	// sent, and is itself redirected away from when already signed in.
	LoginPath string
	// HomePath is where an already-authenticated visit to LoginPath lands.
	HomePath string
}

func (cfg GuardConfig) withDefaults() GuardConfig {
	if len(cfg.Protected) == 0 {
		cfg.Protected = []string{
			"/dashboard",
			"/dashboard-menu",
			"/dashboard-faq",
			"/dashboard-news",
			"/dashboard-about",
		}
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/dashboard"
	}
	return cfg
}

func (cfg GuardConfig) isProtected(path string) bool {
	for _, p := range cfg.Protected {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RouteGuard returns a middleware that gates page routes on session
// presence: protected paths without a valid session redirect to the login
// page, and the login page with a valid session redirects to the dashboard.
// Everything else passes through untouched. The decision is made fresh per
// request and never mutates cookies; a provider lookup failure classifies
// the request as anonymous rather than blocking it.
func RouteGuard(authSvc AuthServiceInterface, cfg GuardConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated := hasValidSession(r, authSvc)

			switch {
			case cfg.isProtected(r.URL.Path) && !authenticated:
				target := cfg.LoginPath + "?redirect_uri=" + url.QueryEscape(safeRedirectPath(r.URL.RequestURI()))
				http.Redirect(w, r, target, http.StatusSeeOther)
			case r.URL.Path == cfg.LoginPath && authenticated:
				http.Redirect(w, r, cfg.HomePath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// hasValidSession reports whether the request carries an access token the
// provider still recognizes. Lookup errors count as no session.
func hasValidSession(r *http.Request, authSvc AuthServiceInterface) bool {
	token := accessTokenFromRequest(r, authSvc)
	if token == "" {
		return false
	}
	session, err := authSvc.CurrentSession(r.Context(), token)
	if err != nil {
		return false
	}
	return session != nil
}

// RequireAuth returns a middleware that requires authentication.
// If the user is not authenticated, it returns a 401 Unauthorized response.
func RequireAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getUserFromRequest(r, authSvc)
			if user == nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			ctx := SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires a minimum role.
// Unauthenticated requests get 401; authenticated requests below the
// required role get 403.
func RequireRole(authSvc AuthServiceInterface, requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getUserFromRequest(r, authSvc)
			if user == nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			if !user.Role.AtLeast(requiredRole) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			ctx := SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accessTokenFromRequest pulls the access token from the tenant auth cookie,
// falling back to an Authorization bearer header for non-browser clients.
func accessTokenFromRequest(r *http.Request, authSvc AuthServiceInterface) string {
	if name := authSvc.AuthCookieName(); name != "" {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
	}

	authz := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// getUserFromRequest resolves the full user (role from the profile record)
// behind the request's access token. Any failure yields nil.
func getUserFromRequest(r *http.Request, authSvc AuthServiceInterface) *domainauth.User {
	token := accessTokenFromRequest(r, authSvc)
	if token == "" {
		return nil
	}
	user, err := authSvc.CurrentUser(r.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

// CompressionConfig holds configuration for the compression middleware.
type CompressionConfig struct {
	Level int // gzip level, defaults to gzip.DefaultCompression
}

var compressibleTypes = map[string]bool{ //nolint:gochecknoglobals // read-only lookup table
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"image/svg+xml":          true,
}

// Compression returns a middleware that gzips responses for clients that
// accept it, skipping HEAD requests, bodiless statuses, and content types
// that do not benefit from compression.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	level := cfg.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	pool := &sync.Pool{
		New: func() any {
			zw, err := gzip.NewWriterLevel(nil, level)
			if err != nil {
				return gzip.NewWriter(nil)
			}
			return zw
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")
			gzw := &gzipResponseWriter{ResponseWriter: w, pool: pool}
			next.ServeHTTP(gzw, r)
			gzw.close()
		})
	}
}

// acceptsGzip reports whether the Accept-Encoding header names gzip without
// explicitly disabling it via q=0.
func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		encoding, params, _ := strings.Cut(part, ";")
		if strings.TrimSpace(encoding) != "gzip" {
			continue
		}
		params = strings.ReplaceAll(params, " ", "")
		if params == "q=0" || strings.HasPrefix(params, "q=0.0") {
			return false
		}
		return true
	}
	return false
}

// gzipResponseWriter defers the compress/pass-through decision until the
// status code and content type are known.
type gzipResponseWriter struct {
	http.ResponseWriter
	pool          *sync.Pool
	zw            *gzip.Writer
	headerWritten bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true

	if statusCode < 200 || statusCode == http.StatusNoContent || statusCode == http.StatusNotModified {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	if w.Header().Get("Content-Encoding") != "" {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}

	contentType, _, _ := strings.Cut(w.Header().Get("Content-Type"), ";")
	if !compressibleTypes[strings.TrimSpace(strings.ToLower(contentType))] {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}

	zw, ok := w.pool.Get().(*gzip.Writer)
	if !ok {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	zw.Reset(w.ResponseWriter)
	w.zw = zw
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.zw != nil {
		return w.zw.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) close() {
	if w.zw == nil {
		return
	}
	_ = w.zw.Close()
	w.pool.Put(w.zw)
	w.zw = nil
}

// Flush implements http.Flusher for streaming support.
func (w *gzipResponseWriter) Flush() {
	if w.zw != nil {
		_ = w.zw.Flush()
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

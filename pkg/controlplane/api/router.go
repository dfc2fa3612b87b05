package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/controlplane/api/auth"
	"github.com/paperbay/paperbay/pkg/controlplane/api/handlers"
	apiMiddleware "github.com/paperbay/paperbay/pkg/controlplane/api/middleware"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/editor"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/metrics"
	"github.com/paperbay/paperbay/pkg/sharing"
)

// RouterDeps carries the services the router wires into handlers.
type RouterDeps struct {
	Store   store.Store
	Ledger  *ledger.Service
	Sharing *sharing.Service
	Editor  *editor.Service

	JWTService *auth.JWTService

	// PublicBaseURL is the externally reachable address used when minting
	// share links and editor session configs.
	PublicBaseURL string

	// EditorAllowedHosts lists the hosts save callbacks may download
	// edited documents from.
	EditorAllowedHosts []string

	HTTPMetrics metrics.HTTPMetrics
}

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// Routes:
//   - GET  /health, /health/ready - probes (unauthenticated)
//   - GET  /metrics - Prometheus scrape endpoint (when enabled)
//   - /public/{token}/* - anonymous access via share links
//   - /api/v1/editor/sessions/* - editing-service endpoints, session-token
//     authenticated
//   - /api/v1/* - everything else, bearer-token authenticated
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(httpMetrics(deps.HTTPMetrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	healthHandler := handlers.NewHealthHandler(deps.Store)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	documentsHandler := handlers.NewDocumentsHandler(deps.Ledger, deps.Sharing)
	sharesHandler := handlers.NewSharesHandler(deps.Sharing, deps.Store, deps.PublicBaseURL)
	sessionsHandler := handlers.NewSessionsHandler(deps.Editor, deps.Store, deps.PublicBaseURL, deps.EditorAllowedHosts)
	friendsHandler := handlers.NewFriendsHandler(deps.Store)
	publicHandler := handlers.NewPublicHandler(deps.Sharing, deps.Ledger, deps.Editor, deps.PublicBaseURL)

	// Anonymous access through public share links. The link token is the
	// only credential.
	r.Route("/public/{token}", func(r chi.Router) {
		r.Get("/", publicHandler.Get)
		r.Get("/content", publicHandler.Download)
		r.Post("/editor/sessions", publicHandler.OpenSession)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Editing-service endpoints. The external editor has no bearer
		// token; the short-lived session token authenticates these.
		r.Route("/editor/sessions", func(r chi.Router) {
			r.Get("/content", sessionsHandler.Content)
			r.Post("/callback", sessionsHandler.Callback)
		})

		// Everything else requires a validated identity token.
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(deps.JWTService, deps.Store))

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", documentsHandler.List)
				r.Post("/", documentsHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", documentsHandler.Get)
					r.Get("/content", documentsHandler.Download)
					r.Put("/content", documentsHandler.Replace)
					r.Patch("/", documentsHandler.Rename)
					r.Delete("/", documentsHandler.Delete)

					r.Post("/shares/friend", sharesHandler.ShareToFriend)
					r.Post("/shares/public", sharesHandler.CreatePublicLink)

					r.Post("/editor/sessions", sessionsHandler.Open)
				})
			})

			r.Get("/quota", documentsHandler.Quota)

			r.Route("/shares", func(r chi.Router) {
				r.Get("/", sharesHandler.ListGranted)
				r.Get("/received", sharesHandler.ListReceived)
				r.Delete("/{id}", sharesHandler.Revoke)
			})

			r.Route("/friends", func(r chi.Router) {
				r.Get("/", friendsHandler.List)
				r.Post("/requests", friendsHandler.Request)
				r.Post("/requests/{id}/accept", friendsHandler.Accept)
			})

			r.Get("/users/search", friendsHandler.Search)
		})
	})

	return r
}

// isHealthPath returns true if the request path is a probe endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger logs requests through the internal logger. Probe requests
// log at DEBUG to keep noise down under Kubernetes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyClientIP, r.RemoteAddr,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyStatus, ww.Status(),
			"bytes", ww.BytesWritten(),
			logger.KeyDuration, duration.String(),
		}

		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}

// httpMetrics records request counts, durations and in-flight gauge,
// labeled by the chi route pattern rather than the raw path so token-
// bearing URLs do not explode cardinality.
func httpMetrics(m metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			m.RecordRequestStart()
			defer m.RecordRequestEnd()

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.RecordRequest(r.Method, route, ww.Status(), time.Since(start))
		})
	}
}

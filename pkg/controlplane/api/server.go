package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/controlplane/api/auth"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/editor"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/metrics"
	"github.com/paperbay/paperbay/pkg/sharing"
)

// Server provides the REST API HTTP server with graceful shutdown.
type Server struct {
	server       *http.Server
	jwtService   *auth.JWTService
	config       APIConfig
	shutdownOnce sync.Once
}

// Services bundles the domain services the API exposes.
type Services struct {
	Store   store.Store
	Ledger  *ledger.Service
	Sharing *sharing.Service
	Editor  *editor.Service
}

// NewServer creates a new API HTTP server in a stopped state. Call Start
// to begin serving.
//
// The JWT secret must be configured via config.JWT.Secret or the
// PAPERBAY_API_JWT_SECRET environment variable and match the identity
// provider's signing key.
func NewServer(config APIConfig, svcs Services) (*Server, error) {
	config.applyDefaults()

	jwtSecret := config.GetJWTSecret()
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters; set via %s env var or config", EnvJWTSecret)
	}

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:        jwtSecret,
		Issuer:        "paperbay",
		TokenDuration: config.JWT.TokenDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	router := NewRouter(RouterDeps{
		Store:              svcs.Store,
		Ledger:             svcs.Ledger,
		Sharing:            svcs.Sharing,
		Editor:             svcs.Editor,
		JWTService:         jwtService,
		PublicBaseURL:      config.PublicBaseURL,
		EditorAllowedHosts: config.EditorAllowedHosts,
		HTTPMetrics:        metrics.NewHTTPMetrics(),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		server:     server,
		jwtService: jwtService,
		config:     config,
	}, nil
}

// JWTService exposes the token service, used by the CLI login flow and
// tests to mint tokens with the shared secret.
func (s *Server) JWTService() *auth.JWTService {
	return s.jwtService
}

// Start runs the server and blocks until the context is cancelled or the
// listener fails. Cancellation triggers graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "port", s.config.Port)
		logger.Debug("API endpoints available",
			"health", fmt.Sprintf("http://localhost:%d/health", s.config.Port),
			"ready", fmt.Sprintf("http://localhost:%d/health/ready", s.config.Port),
		)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		// Fresh context; the cancelled one would abort shutdown immediately.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown. Safe to call multiple times and
// concurrently with Start.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("API server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown error: %w", err)
			logger.Error("API server shutdown error", logger.KeyError, err)
		} else {
			logger.Info("API server stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is configured to listen on.
func (s *Server) Port() int {
	return s.config.Port
}

// Package main is the entrypoint for the visitor ID lookup API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/adagio/visitorid/internal/auth"
	"github.com/adagio/visitorid/internal/config"
	"github.com/adagio/visitorid/internal/handler"
	"github.com/adagio/visitorid/internal/metrics"
	"github.com/adagio/visitorid/internal/middleware"
	"github.com/adagio/visitorid/internal/repository"
	"github.com/adagio/visitorid/internal/secrets"
	"github.com/adagio/visitorid/internal/server"
	"github.com/adagio/visitorid/internal/service"
)

func main() {
	// Load .env if present (local development)
	_ = godotenv.Load()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	if cfg.UsesDefaultSecretKey() && !cfg.IsDevelopment() {
		logger.Warn("API_SECRET_KEY is the built-in default; credential checksums verify nothing until it is changed")
	}

	// Load and verify the credential set. The set is immutable for the
	// lifetime of the process; rotation means restart.
	credentialSet, err := loadCredentialSet(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to load credentials",
			slog.String("error", sanitizeError(err, cfg.GoogleCredentialsJSON, cfg.APITokensJSON)),
		)
		os.Exit(1)
	}

	// Initialize document store
	repo, err := repository.New(ctx, cfg.GoogleCloudProject, cfg.FirestoreCollection, secrets.ClientOptions(cfg.GoogleCredentialsJSON)...)
	if err != nil {
		logger.Error("failed to create document store client",
			slog.String("error", sanitizeError(err, cfg.GoogleCredentialsJSON)),
			slog.String("project", cfg.GoogleCloudProject),
		)
		os.Exit(1)
	}
	logger.Info("document store client ready",
		slog.String("project", cfg.GoogleCloudProject),
		slog.String("collection", cfg.FirestoreCollection),
	)

	// Initialize services
	metricsRecorder := metrics.NewNoop()
	lookupService := service.NewLookupService(repo, cfg.StoreTimeout, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	lookupHandler := handler.NewLookupHandler(lookupService, logger, cfg.MaxRequestBodySize)

	// Setup router
	r := setupRouter(h, lookupHandler, credentialSet, metricsRecorder, logger, cfg.IsDevelopment())

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("document store", func(ctx context.Context) error {
		return repo.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"collection", cfg.FirestoreCollection,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadCredentialSet fetches the credential payload, verifies every entry
// against its checksum, and returns the immutable accept set. Starting
// without a single usable credential is refused.
func loadCredentialSet(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*auth.Set, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CredentialLoadTimeout)
	defer cancel()

	payload, err := fetchCredentialPayload(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	creds, err := auth.ParseCredentialPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("parse credential payload: %w", err)
	}

	set, corrupted := auth.NewSet(cfg.APISecretKey, creds)
	for _, name := range corrupted {
		logger.Warn("credential excluded: checksum verification failed",
			slog.String("credential", name),
		)
	}
	if set.Len() == 0 {
		return nil, errors.New("no credential passed checksum verification")
	}

	logger.Info("credential set loaded",
		slog.Int("usable", set.Len()),
		slog.Int("excluded", len(corrupted)),
	)

	return set, nil
}

// fetchCredentialPayload prefers the secret store; an inline payload from
// the environment is the fallback for local development or when the store
// is unreachable.
func fetchCredentialPayload(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]byte, error) {
	manager, err := secrets.NewManager(ctx, secrets.ClientOptions(cfg.GoogleCredentialsJSON)...)
	if err == nil {
		defer func() { _ = manager.Close() }()

		payload, accessErr := manager.AccessLatest(ctx, cfg.GoogleCloudProject, cfg.APITokensSecretName)
		if accessErr == nil {
			logger.Info("credential payload fetched from secret store",
				slog.String("secret", cfg.APITokensSecretName),
			)
			return payload, nil
		}
		err = accessErr
	}

	if cfg.APITokensJSON == "" {
		return nil, fmt.Errorf("fetch credential payload: %w", err)
	}

	logger.Warn("secret store unavailable, using inline credential payload",
		slog.String("error", sanitizeError(err, cfg.GoogleCredentialsJSON)),
	)
	return []byte(cfg.APITokensJSON), nil
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	lookupHandler *handler.LookupHandler,
	credentials *auth.Set,
	recorder metrics.Recorder,
	logger *slog.Logger,
	isDevelopment bool,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: isDevelopment}))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	// Service banner and health endpoints (no auth required)
	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:      logger,
		Credentials: credentials,
		Metrics:     recorder,
	}

	// Lookup endpoint (requires authentication)
	r.With(middleware.Auth(authCfg)).Post("/lookup", lookupHandler.Lookup)

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

// sanitizeError strips secret material from error text before logging.
func sanitizeError(err error, secretValues ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secretValues {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, "[redacted]")
	}

	return msg
}

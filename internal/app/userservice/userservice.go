// Package userservice assembles the user service: storage, migrations,
// optional cache and event broker, the auth service and the HTTP server.
// Everything is constructed once here and passed down explicitly; there
// is no ambient global state.
package userservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/azangue-cmd/techshop-infrastructure/internal/cache"
	"github.com/azangue-cmd/techshop-infrastructure/internal/config"
	"github.com/azangue-cmd/techshop-infrastructure/internal/events"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/jwt"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/sl"
	"github.com/azangue-cmd/techshop-infrastructure/internal/migrations"
	authservices "github.com/azangue-cmd/techshop-infrastructure/internal/services/auth"
	"github.com/azangue-cmd/techshop-infrastructure/internal/storage"
)

// Version is reported by the banner and health endpoints.
const Version = "1.0.0"

// App holds the running parts of the service.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
	publisher *events.Publisher
}

// New builds the service from its configuration. Redis and RabbitMQ are
// optional collaborators: an empty address in the config leaves them out.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var cacheRedis *cache.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
	}

	var publisher *events.Publisher
	if cfg.RabbitMQ.URL != "" {
		publisher, err = events.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, err
		}
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	// The service's optional collaborators are interfaces; a typed nil
	// pointer must not reach it as a non-nil interface value.
	var listCache authservices.ListCache
	if cacheRedis != nil {
		listCache = cacheRedis
	}
	var eventPublisher authservices.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	authService := authservices.NewAuthService(db, jwtMaker, listCache, eventPublisher, cfg.CacheTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, jwtMaker, cfg)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		cache:     cacheRedis,
		publisher: publisher,
	}, nil
}

// Run serves HTTP until the context is cancelled, then drains the server
// and releases the storage, cache and broker connections.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Db.Close(); err != nil {
			a.logger.Error("failed to close cache", sl.Err(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("failed to close event publisher", sl.Err(err))
		}
	}
}

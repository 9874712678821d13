package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/api"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
	"github.com/gestionmed/admin-gateway/internal/core/service"
	"github.com/gestionmed/admin-gateway/internal/infrastructure/backend"
	"github.com/gestionmed/admin-gateway/internal/infrastructure/queue"
	"github.com/gestionmed/admin-gateway/internal/infrastructure/store"
	"github.com/gestionmed/admin-gateway/internal/pkg/config"
	"github.com/gestionmed/admin-gateway/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Session store: memory by default, Redis when configured ---
	var sessionStore ports.SessionStore
	var rdb *redis.Client
	switch cfg.Session.Store {
	case "redis":
		client, err := store.Connect(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		rdb = client
		sessionStore = store.NewRedis(rdb, log)
	default:
		sessionStore = store.NewMemory(log)
	}

	backendClient, err := backend.NewClient(backend.ClientOptions{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Store:   sessionStore,
		Log:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build backend client")
	}
	authClient := backend.NewAuthClient(backendClient)

	notifier := queue.NewNotifier(cfg.Session.NotifyWorkers, backendClient, cfg.Backend.EventsPath, log)
	notifier.Start(ctx)

	manager := service.NewManager(service.ManagerOptions{
		Store:    sessionStore,
		Auth:     authClient,
		Notifier: notifier,
		Log:      log,
	})

	// Forced invalidation: the gate has already cleared the store when this
	// hook runs; converge in-memory state, then navigate.
	nav := loginNavigator{path: cfg.LoginPath, log: log}
	backendClient.SetUnauthorizedHandler(func() {
		manager.Invalidate("unauthorized response")
		nav.ToLogin()
	})

	// The startup check runs concurrently with the server: protected routes
	// answer 503 until the session state settles.
	go manager.Bootstrap(ctx)

	e := api.NewRouter(api.RouterDeps{
		Manager:   manager,
		Auth:      authClient,
		Store:     sessionStore,
		Backend:   backendClient,
		Redis:     rdb,
		LoginPath: cfg.LoginPath,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("admin gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown on SIGINT / SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down gateway")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

// loginNavigator is the gateway's rendition of the browser's hard jump to the
// login page: the failing response carries the redirect hint, and the jump is
// recorded here.
type loginNavigator struct {
	path string
	log  zerolog.Logger
}

func (n loginNavigator) ToLogin() {
	n.log.Info().Str("path", n.path).Msg("redirecting to login")
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/domain"
	httpapi "github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/http"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/service"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/aussiebroadwan/tunnelhub/pkg/relay"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

const (
	// AppName is shown on the dashboard and in the API index.
	AppName = "TunnelHub"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "1.0.0"

// ErrRestartRequested is returned by Run after an authorised restart request
// has shut the server down. The caller is expected to re-exec the binary.
var ErrRestartRequested = errors.New("restart requested")

// Application encapsulates the dashboard with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	keys  *keyx.Manager
	names store.Names
	users []domain.UserConfig

	// Services
	credentialService   *service.CredentialService
	sessionService      *service.SessionService
	tunnelService       *service.TunnelService
	housekeepingService *service.HousekeepingService
	keyRotationService  *service.KeyRotationService

	// HTTP server
	server  *http.Server
	router  *httpapi.Router
	restart chan struct{}
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, slogx.New(slogx.Config{
		Service: "tunnelhub",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger,
		restart: make(chan struct{}, 1),
	}

	users, err := LoadUsers(cfg.Users, cfg.UsersFile)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		logger.Warn("no users configured; the dashboard will list no tunnels")
	}
	app.users = users

	keys, err := InitKeys(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.keys = keys

	secret, err := AdminSecret(cfg, logger)
	if err != nil {
		return nil, err
	}

	app.names = OpenNameStore(context.Background(), cfg, logger)

	app.initServices(secret)
	if err := app.initHTTP(); err != nil {
		_ = app.names.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested. It
// returns ErrRestartRequested when shutdown was triggered by /api/restart.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("tunnelhub starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"users", len(app.users),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.names.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	case <-app.restart:
		app.logger.Info("restart requested")
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return ErrRestartRequested
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tunnelhub...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.names.Close(); err != nil {
		app.logger.Error("error closing name store", "error", err)
		return err
	}

	app.logger.Info("tunnelhub stopped")
	return nil
}

// requestRestart asks Run to shut down and return ErrRestartRequested.
func (app *Application) requestRestart() {
	select {
	case app.restart <- struct{}{}:
	default:
	}
}

func (app *Application) initServices(secret cryptox.Secret) {
	app.credentialService = &service.CredentialService{
		Keys:   app.keys,
		Secret: secret,
		Logger: app.logger,
	}

	app.sessionService = service.NewSessionService(app.cfg.SessionTTL, app.logger)

	relayClient := relay.New(
		relay.WithTimeout(app.cfg.RelayTimeout),
		relay.WithLogger(app.logger),
	)
	app.tunnelService = &service.TunnelService{
		Users:  service.NewUserDirectory(app.users),
		Relay:  relayClient,
		Names:  app.names,
		Logger: app.logger,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.sessionService,
		app.names,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	app.keyRotationService = &service.KeyRotationService{
		Keys:   app.keys,
		Bits:   app.cfg.RSAKeySize,
		Logger: app.logger,
	}
}

func (app *Application) initHTTP() error {
	clientIP, err := httpx.NewClientIPResolver(app.cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	router := httpapi.NewRouter(AppName, BuildVersion, app.logger)

	router.Keys = app.keys
	router.Names = app.names
	router.CredentialService = app.credentialService
	router.SessionService = app.sessionService
	router.TunnelService = app.tunnelService
	router.Users = app.tunnelService.Users
	router.KeyRotationService = app.keyRotationService

	router.ClientIP = clientIP
	router.RateLimiter = httpx.NewRateLimiter(httpx.RateLimitConfig{
		RequestsPerMinute: app.cfg.RateLimitRPM,
		KeyExtractor:      clientIP.KeyExtractor(),
	})
	router.MaxBodyBytes = app.cfg.MaxRequestSize
	router.CORSOrigins = app.cfg.CORSOrigins
	router.RefreshInterval = app.cfg.AutoRefreshInterval
	router.Restart = app.requestRestart
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

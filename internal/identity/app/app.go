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

	goredis "github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/identity/internal/identity/http"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	redisdriver "github.com/aussiebroadwan/identity/internal/identity/store/drivers/redis"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the identity service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	revoked store.RevokedTokens
	redis   *goredis.Client // nil unless the redis backend is selected
	codec   *jwtx.Codec

	authService         *service.AuthService
	userService         *service.UserService
	roleService         *service.RoleService
	permissionService   *service.PermissionService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService
	housekeepingStarted bool

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	codec, err := jwtx.NewCodec(cfg.Issuer, []byte(cfg.SignerKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := app.initRevocation(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.bootstrap(ctx); err != nil {
		_ = app.close()
		return nil, err
	}

	app.initHTTP()

	app.logger.Info("identity service configured", "config", cfg, "codec", codec)
	return app, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()
	app.housekeepingStarted = true

	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingStarted {
		app.housekeepingService.Stop()
		app.housekeepingStarted = false
	}

	if err := app.close(); err != nil {
		return err
	}

	app.logger.Info("identity service stopped")
	return nil
}

// close releases the backends.
func (app *Application) close() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// initDatabase opens the SQLite database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initRevocation selects where revoked token ids are kept.
func (app *Application) initRevocation(ctx context.Context) error {
	switch app.cfg.RevocationBackend {
	case BackendRedis:
		client, err := redisdriver.NewClient(ctx, redisdriver.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("failed to connect revocation store: %w", err)
		}
		app.redis = client
		app.revoked = redisdriver.NewRevokedTokens(client, app.cfg.RedisKeyPrefix)
		app.logger.Info("revocation store: redis", "addr", app.cfg.RedisAddr)
	default:
		app.revoked = app.db.RevokedTokens()
		app.logger.Info("revocation store: sqlite")
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	placeholder, err := cryptox.GeneratePassword()
	if err != nil {
		return fmt.Errorf("generate unknown user password: %w", err)
	}
	unknownUserHash, err := cryptox.HashPassword(placeholder, app.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash unknown user password: %w", err)
	}

	app.authService = &service.AuthService{
		Users:     store.NewUserDirectoryAdapter(app.db),
		Passwords: cryptox.BcryptVerifier{},
		Revoked:   app.revoked,
		Codec:     app.codec,
		Config: service.AuthConfig{
			ValidDuration:       app.cfg.ValidDuration(),
			RefreshableDuration: app.cfg.RefreshableDuration(),
		},
		UnknownUserHash: unknownUserHash,
	}

	app.userService = &service.UserService{Store: app.db, BcryptCost: app.cfg.BcryptCost}
	app.roleService = &service.RoleService{Store: app.db}
	app.permissionService = &service.PermissionService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db, BcryptCost: app.cfg.BcryptCost}

	app.housekeepingService = service.NewHousekeepingService(
		app.revoked,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// bootstrap seeds the default roles and the admin account.
func (app *Application) bootstrap(ctx context.Context) error {
	if app.cfg.AdminUsername == "" {
		return nil
	}

	res, err := app.bootstrapService.EnsureAdmin(ctx, app.cfg.AdminUsername, app.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	switch {
	case res.GeneratedPassword != "":
		app.logger.Warn("admin user created with generated password, change it",
			"username", app.cfg.AdminUsername,
			"password", res.GeneratedPassword,
		)
	case res.Created:
		app.logger.Info("admin user created", "username", app.cfg.AdminUsername)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.RoleService = app.roleService
	router.PermissionService = app.permissionService
	router.AuthLimit = app.cfg.AuthLimit
	if p, ok := app.revoked.(httpapi.Pinger); ok && app.redis != nil {
		router.Revocation = p
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vlat-exam/api/internal/api"
	"github.com/vlat-exam/api/internal/api/handlers"
	"github.com/vlat-exam/api/internal/api/validators"
	"github.com/vlat-exam/api/internal/app"
	"github.com/vlat-exam/api/internal/auth"
	"github.com/vlat-exam/api/internal/models"
	"github.com/vlat-exam/api/internal/repository"
	"github.com/vlat-exam/api/internal/services"
	"github.com/vlat-exam/api/pkg/config"
	"github.com/vlat-exam/api/pkg/database"
	"github.com/vlat-exam/api/pkg/logger"
)

// registerModels returns every model whose table is created at startup.
func registerModels() []any {
	return []any{
		&models.User{},
	}
}

func main() {
	started := time.Now()

	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting VLAT exam API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr()),
		zap.String("dbDriver", cfg.DBDriver),
		zap.String("dbHost", cfg.DBHost),
		zap.Int("dbPort", cfg.DBPort),
		zap.String("dbName", cfg.DBName),
		zap.String("dbUser", cfg.DBUser),
	)

	db, err := database.Open(database.Options{
		Driver:     cfg.DBDriver,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		Name:       cfg.DBName,
		TLS:        cfg.IsProduction(),
		MaxConns:   cfg.DBMaxConns,
		LogQueries: cfg.IsDevelopment(),
	}, log)
	if err != nil {
		log.Fatal("Invalid database configuration", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("closing database", zap.Error(err))
		}
	}()

	userRepo := repository.NewUserRepository(db)

	// the listener starts even when the store is down; requests report it
	app.PrepareStore(context.Background(), log, db, userRepo, registerModels()...)

	if cfg.UsingDefaultSecret() {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
	}
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret))

	router := api.NewRouter(api.Dependencies{
		Verbose:           cfg.IsDevelopment(),
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		ExposeDiagnostics: cfg.ExposeDiagnostics,
		Verifier:          issuer,
		HealthHandler: handlers.NewHealthHandler(database.NewChecker(db), handlers.SystemInfo{
			Environment: cfg.AppEnv,
			DBHost:      cfg.DBHost,
			DBName:      cfg.DBName,
			DBPort:      cfg.DBPort,
			DBUser:      cfg.DBUser,
			Started:     started,
		}),
		AuthHandler:  handlers.NewAuthHandler(services.NewAuthService(userRepo, issuer), validators.New()),
		UsersHandler: handlers.NewUsersHandler(services.NewUserService(userRepo)),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", cfg.HTTPAddr()),
			zap.String("health", "/api/health"),
			zap.String("dbInfo", "/api/db-info"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}

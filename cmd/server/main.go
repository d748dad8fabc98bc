// Package main initializes and starts the user account HTTP server,
// setting up configuration, logging, database and cache connections,
// repositories, services and handlers.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/mkozlov/userd/internal/config"
	"github.com/mkozlov/userd/internal/crypto"
	"github.com/mkozlov/userd/internal/db"
	"github.com/mkozlov/userd/internal/logger"
	"github.com/mkozlov/userd/internal/repository"
	"github.com/mkozlov/userd/internal/server/handler/http"
	"github.com/mkozlov/userd/internal/service"
	"github.com/mkozlov/userd/internal/token"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file and environment configuration. This fails
	// the process if any pepper part or token secret is missing.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	buildVersion := version
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	buildDateOut := buildDate
	if buildDateOut == "" {
		buildDateOut = "N/A"
	}
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDateOut)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge soft-deleted users in the background.
	db.StartSoftDeleteCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days
		zapLogger,
	)

	// Initialize the Redis-backed session cache.
	sessions, err := repository.NewRedisSessionCache(options.RedisAddr, options.SessionTTL)
	if err != nil {
		zapLogger.Fatal("cannot init session cache", zap.Error(err))
	}
	defer sessions.Close()

	// Initialize the user repository and the crypto collaborators.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	hasher := crypto.NewHasher(options.Pepper)
	issuer := token.NewIssuer(options.AccessSecret, options.RefreshSecret,
		options.AccessTTL, options.RefreshTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, sessions, hasher, issuer)
	userService := service.NewUserService(userRepo, sessions)

	// Create HTTP handlers for auth and user endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	userHandler := &http.UserHandler{UserService: userService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, userHandler, issuer, sessions,
		options.RateLimit, options.RateWindow, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

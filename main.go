// Package main provides the main entry point for the student registration portal
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/enrolld/enrolld/app/handlers"
	"github.com/enrolld/enrolld/app/middleware"
	"github.com/enrolld/enrolld/app/router"
	"github.com/enrolld/enrolld/app/services"
	businessflow "github.com/enrolld/enrolld/business_flow"
	"github.com/enrolld/enrolld/config"
	"github.com/enrolld/enrolld/repository"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application holds the wired components and the background worker stoppers
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	stopFuncs []func()
}

func main() {
	log.Println("Starting student registration portal...")

	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging tees the standard logger to stdout and the rotating log file.
// The same file backs the admin /logs page.
func setupLogging(cfg config.LoggingConfig) {
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	log.SetFlags(log.LstdFlags | log.LUTC)
}

// initializeApplication wires repositories, services, flows, handlers, and the router
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	redisClient, err := repository.Connect(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	stopMonitor := repository.StartHealthMonitor(context.Background(), redisClient, cfg.Redis.HealthInterval)

	// Repositories
	userRepo := repository.NewUserRepository(redisClient)
	adminRepo := repository.NewAdminRepository(redisClient)

	// Services
	sessionService, err := services.NewSessionService(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}
	mailService := services.NewMailService(cfg.SMTP)

	// Business flows
	registrationFlow := businessflow.NewRegistrationFlow(userRepo)
	adminAuthFlow := businessflow.NewAdminAuthFlow(adminRepo, cfg.Security.BcryptCost)
	broadcastFlow := businessflow.NewBroadcastFlow(userRepo, mailService)

	// Seed the singleton admin account on first run
	seedCtx, seedCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer seedCancel()
	if err := adminAuthFlow.EnsureAccount(seedCtx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	// Handlers and middleware
	registrationHandler := handlers.NewRegistrationHandler(registrationFlow)
	adminHandler := handlers.NewAdminHandler(
		adminAuthFlow,
		broadcastFlow,
		sessionService,
		cfg.Logging.FilePath,
		cfg.Session.CookieSecure,
		cfg.Session.CookieSameSite,
	)
	sessionMiddleware := middleware.NewSessionMiddleware(sessionService)

	r := router.NewFiberRouter(cfg, registrationHandler, adminHandler, sessionMiddleware)

	return &Application{
		router: r,
		config: cfg,
		stopFuncs: []func(){
			stopMonitor,
			func() { _ = redisClient.Close() },
		},
	}, nil
}

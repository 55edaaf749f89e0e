// Package main provides the main entry point for the phone catalog API
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/telshop/phone-catalog/app/handlers"
	"github.com/telshop/phone-catalog/app/router"
	businessflow "github.com/telshop/phone-catalog/business_flow"
	"github.com/telshop/phone-catalog/config"
	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/repository"
)

// Application represents the main application structure
type Application struct {
	router router.Router
	config *config.Config
}

func main() {
	log.Println("Starting phone catalog application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeApplication wires the store handle explicitly through the
// flows and handlers; there is no ambient global connection.
func initializeApplication(cfg *config.Config) (*Application, error) {
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	phoneRepo := repository.NewPhoneRepository(db)

	catalogFlow := businessflow.NewCatalogFlow(phoneRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogFlow)

	return &Application{
		router: router.NewFiberRouter(cfg, catalogHandler),
		config: cfg,
	}, nil
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&models.Phone{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// setupLogging routes the standard logger through a rotating file when
// one is configured, keeping stderr output alongside it.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.File == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

// serveMetrics exposes Prometheus metrics on a dedicated listener,
// away from the public API port.
func serveMetrics(cfg config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	address := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("Metrics available on %s%s", address, cfg.Path)
	if err := http.ListenAndServe(address, mux); err != nil {
		log.Printf("Metrics server stopped: %v", err)
	}
}

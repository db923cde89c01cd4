package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/teaminfinity/expense_management/internal/core/services"
	"github.com/teaminfinity/expense_management/internal/handlers"
	"github.com/teaminfinity/expense_management/internal/middleware"
	"github.com/teaminfinity/expense_management/internal/platform/config"
	"github.com/teaminfinity/expense_management/internal/repositories/database/pgsql"
	"github.com/teaminfinity/expense_management/internal/utils"
	"github.com/teaminfinity/expense_management/pkg/database"
)

// @title Expense Management API
// @version 1.0
// @description Multi-tenant expense reimbursement backend with configurable approval workflows.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(&repos, cfg)

	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

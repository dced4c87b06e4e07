package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	accountUseCase "github.com/propstake/token-ledger/internal/domain/usecase/account"
	"github.com/propstake/token-ledger/internal/domain/usecase/paymentmethod"
	purchaseUseCase "github.com/propstake/token-ledger/internal/domain/usecase/purchase"

	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/database"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/identifier"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/logger"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/propstake/token-ledger/internal/infrastructure/adapter/time"
	"github.com/propstake/token-ledger/internal/infrastructure/config"
	"github.com/propstake/token-ledger/internal/infrastructure/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.LevelFromString(cfg.Logger.Level))

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			appLogger.Error("Failed to close database connection", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	// Run migrations and seed the payment rail catalog
	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if err := migration.SeedDefaultPaymentMethods(context.Background(), conn.DB, appLogger, tp); err != nil {
		appLogger.Error("Failed to seed payment methods", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories and unit of work
	methodRepo := repository.NewPaymentMethodRepository(conn.DB, appLogger)
	accountRepo := repository.NewAccountRepository(conn.DB, tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(conn.DB, appLogger)
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Initialize use cases
	refGen := identifier.NewUUIDGenerator()
	registry := paymentmethod.NewRegistry(methodRepo, appLogger)
	purchaseService := purchaseUseCase.NewService(uow, registry, tp, refGen, appLogger, cfg.Token.Rate)
	accountService := accountUseCase.NewUseCase(accountRepo, tp, appLogger, cfg.Token.Rate)
	historyService := accountUseCase.NewHistoryUseCase(transactionRepo)

	// Start the deferred settlement worker
	settlementWorker := worker.NewSettlementWorker(
		purchaseService,
		transactionRepo,
		tp,
		appLogger,
		cfg.Settlement.PollInterval,
		cfg.Settlement.ConfirmationDelay,
		cfg.Settlement.BatchSize,
	)
	if err := settlementWorker.Start(); err != nil {
		appLogger.Error("Failed to start settlement worker", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize API handlers
	paymentMethodHandler := handler.NewPaymentMethodHandler(registry, appLogger)
	accountHandler := handler.NewAccountHandler(accountService, historyService, appLogger)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService, appLogger)
	adminHandler := handler.NewAdminHandler(purchaseService, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(
		router,
		cfg.Auth.JWTSecret,
		appLogger,
		paymentMethodHandler,
		accountHandler,
		purchaseHandler,
		adminHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	settlementWorker.Stop()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if err := appLogger.Flush(); err != nil {
		log.Printf("Failed to flush logger: %v", err)
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or TL_DB_HOST environment variable)")
	}
	if cfg.Database.Port == 0 {
		missingConfigs = append(missingConfigs, "database.port (or TL_DB_PORT environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or TL_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or TL_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or TL_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or TL_JWT_SECRET environment variable)")
	}

	if cfg.Token.Rate <= 0 {
		missingConfigs = append(missingConfigs, "token.rate")
	}

	if cfg.Settlement.PollInterval <= 0 {
		missingConfigs = append(missingConfigs, "settlement.pollInterval")
	}
	if cfg.Settlement.ConfirmationDelay <= 0 {
		missingConfigs = append(missingConfigs, "settlement.confirmationDelay")
	}
	if cfg.Settlement.BatchSize <= 0 {
		missingConfigs = append(missingConfigs, "settlement.batchSize")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}

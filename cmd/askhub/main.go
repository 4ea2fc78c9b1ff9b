package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"askhub/db"
	"askhub/internal/api"
	"askhub/internal/api/handlers"
	"askhub/internal/index"
	"askhub/internal/repository"
	"askhub/internal/service"
	"askhub/pkg/auth"
	"askhub/pkg/config"
	"askhub/pkg/logger"
	"askhub/pkg/postgres"

	"go.uber.org/zap"
)

// @title Askhub API
// @version 1.0
// @description Domain-partitioned semantic question-answering retrieval service

// @contact.name API Support
// @contact.email support@askhub.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Askhub service")

	// Run migrations
	if err := db.Migrate(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize database
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Initialize repositories
	domainRepo := repository.NewDomainRepository(pool, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(pool, appLogger)
	submissionRepo := repository.NewSubmissionRepository(pool, appLogger)
	conversationRepo := repository.NewConversationRepository(pool, appLogger)
	reviewerRepo := repository.NewReviewerRepository(pool, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(reviewerRepo, jwtManager, appLogger)

	idx := index.New(cfg.Retrieval.MaxFeatures)
	queryService := service.NewQueryService(domainRepo, knowledgeRepo, conversationRepo, idx, &cfg.Retrieval, appLogger)
	knowledgeService := service.NewKnowledgeService(domainRepo, knowledgeRepo, &cfg.Retrieval, appLogger)
	submissionService := service.NewSubmissionService(submissionRepo, domainRepo, queryService, appLogger)

	// Build every domain index before serving traffic
	if err := queryService.RefreshAll(ctx); err != nil {
		appLogger.Fatal("Failed to build knowledge index", zap.Error(err))
	}

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(queryService, appLogger)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledgeService, queryService, appLogger)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, appLogger)
	authHandler := handlers.NewAuthHandler(authService, appLogger)

	// Setup router
	app := api.SetupRouter(chatHandler, knowledgeHandler, submissionHandler, authHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

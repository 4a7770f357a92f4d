package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dasha/promptfolio/internal/api"
	"github.com/dasha/promptfolio/internal/api/middleware"
	"github.com/dasha/promptfolio/internal/config"
	"github.com/dasha/promptfolio/internal/logger"
	"github.com/dasha/promptfolio/internal/repository"
	"github.com/dasha/promptfolio/internal/service"
	"github.com/dasha/promptfolio/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewFromEnv(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	artRepo := repository.NewArtRepository(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	qdrantClient, err := repository.NewQdrantClient(&repository.QdrantConnectionConfig{
		Host:            cfg.Qdrant.Host,
		Port:            cfg.Qdrant.Port,
		APIKey:          cfg.Qdrant.APIKey,
		UseTLS:          cfg.Qdrant.UseTLS,
		VectorDimension: cfg.Embedding.Dimensions,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Qdrant: %v", err)
	}
	defer qdrantClient.Close()

	prompts := qdrantClient.Collection(cfg.Qdrant.PromptsCollection)
	categories := qdrantClient.Collection(cfg.Qdrant.CategoriesCollection)

	// Ensure Qdrant collections exist
	ctx := context.Background()
	if err := prompts.EnsureCollection(ctx); err != nil {
		appLogger.Fatalf("Failed to ensure collection %s: %v", prompts.Name(), err)
	}
	if err := categories.EnsureCollection(ctx); err != nil {
		appLogger.Fatalf("Failed to ensure collection %s: %v", categories.Name(), err)
	}

	// Initialize object storage
	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}
	if s3, ok := objectStorage.(*storage.S3Storage); ok {
		if err := s3.EnsureBucket(ctx); err != nil {
			appLogger.Fatalf("Failed to ensure bucket: %v", err)
		}
	}

	// Initialize services
	embeddingService := service.NewEmbeddingService(&service.EmbeddingConfig{
		Provider:   cfg.Embedding.Provider,
		Model:      cfg.Embedding.Model,
		APIKey:     cfg.Embedding.APIKey,
		Dimensions: cfg.Embedding.Dimensions,
	})

	taggerService := service.NewTaggerService(
		prompts,
		categories,
		categoryRepo,
		embeddingService,
		&service.TaggerConfig{CategoryThreshold: cfg.Tagger.CategoryThreshold},
	)

	searchService := service.NewSearchService(
		artRepo,
		prompts,
		embeddingService,
		interactionRepo,
		&service.SearchServiceConfig{
			PromptThreshold: cfg.Search.PromptThreshold,
			Breadth:         cfg.Search.Breadth,
		},
	)

	artService := service.NewArtService(artRepo, interactionRepo, objectStorage, taggerService)
	categoryService := service.NewCategoryService(categoryRepo, categories, embeddingService)
	userService := service.NewUserService(userRepo, interactionRepo)
	authService := service.NewAuthService(userRepo, &service.AuthConfig{
		GoogleUserInfoURL: cfg.Auth.GoogleUserInfoURL,
	})

	// Setup router
	router := api.SetupRouter(&api.Services{
		Arts:       artService,
		Search:     searchService,
		Categories: categoryService,
		Users:      userService,
		Auth:       authService,
	}, appLogger, cfg.Server.Mode, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Server starting on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Infof("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Infof("Server exited")
}

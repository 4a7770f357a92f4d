package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dasha/promptfolio/internal/config"
	"github.com/dasha/promptfolio/internal/logger"
	"github.com/dasha/promptfolio/internal/repository"
	"github.com/dasha/promptfolio/internal/service"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "promptfolio-seed",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	namesFile := flag.String("names", "", "File with one category name per line (defaults to the built-in list)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	names := service.DefaultCategoryNames
	if *namesFile != "" {
		names, err = readNames(*namesFile)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to read category names")
		}
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	categoryRepo := repository.NewCategoryRepository(db)

	qdrantClient, err := repository.NewQdrantClient(&repository.QdrantConnectionConfig{
		Host:            cfg.Qdrant.Host,
		Port:            cfg.Qdrant.Port,
		APIKey:          cfg.Qdrant.APIKey,
		UseTLS:          cfg.Qdrant.UseTLS,
		VectorDimension: cfg.Embedding.Dimensions,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Qdrant")
	}
	defer qdrantClient.Close()

	categories := qdrantClient.Collection(cfg.Qdrant.CategoriesCollection)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		appLogger.Warn("Interrupt received, stopping")
		cancel()
	}()

	if err := categories.EnsureCollection(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure categories collection")
	}

	embeddingService := service.NewEmbeddingService(&service.EmbeddingConfig{
		Provider:   cfg.Embedding.Provider,
		Model:      cfg.Embedding.Model,
		APIKey:     cfg.Embedding.APIKey,
		Dimensions: cfg.Embedding.Dimensions,
	})
	categoryService := service.NewCategoryService(categoryRepo, categories, embeddingService)

	seeded, err := categoryService.Seed(ctx, names)
	if err != nil {
		appLogger.WithError(err).Fatal("Seeding failed")
	}

	appLogger.WithFields(logger.Fields{
		"total":  len(names),
		"seeded": seeded,
	}).Info("Category seeding complete")

	logger.Sync()
}

// readNames loads category names from a file, one per line. Blank lines and
// lines starting with # are skipped.
func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}

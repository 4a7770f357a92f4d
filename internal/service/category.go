package service

import (
	"context"
	"fmt"

	"github.com/dasha/promptfolio/internal/domain"
	"github.com/dasha/promptfolio/internal/logger"
	"github.com/dasha/promptfolio/internal/repository"
)

const defaultTopCategoriesLimit = 10

// CategoryService answers category statistics and owns the seeding step that
// populates both the relational table and the category vector collection.
type CategoryService struct {
	categories *repository.CategoryRepository
	vectors    VectorStore
	embedding  EmbeddingProvider
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	categories *repository.CategoryRepository,
	vectors VectorStore,
	embedding EmbeddingProvider,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		vectors:    vectors,
		embedding:  embedding,
	}
}

// TopCategories returns the most-assigned categories ordered by count
// descending. The result is always capped at 10 rows; callers may ask for
// fewer, never more. Pure relational aggregation; the vector index is not
// involved.
func (s *CategoryService) TopCategories(ctx context.Context, limit int) ([]domain.CategoryCount, error) {
	if limit <= 0 || limit > defaultTopCategoriesLimit {
		limit = defaultTopCategoriesLimit
	}
	return s.categories.TopCategories(ctx, limit)
}

// List returns all seeded categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Seed upserts each category name into the relational store and its
// embedding into the category collection keyed by the row id. Safe to rerun:
// existing names are reused and their embeddings re-upserted in place.
func (s *CategoryService) Seed(ctx context.Context, names []string) (int, error) {
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldComponent: "seed",
	})

	seeded := 0
	for _, name := range names {
		category, err := s.categories.UpsertByName(ctx, name)
		if err != nil {
			return seeded, fmt.Errorf("failed to upsert category %q: %w", name, err)
		}

		embedding, err := s.embedding.Embed(ctx, name)
		if err != nil {
			return seeded, fmt.Errorf("failed to embed category %q: %w", name, err)
		}

		if err := s.vectors.Upsert(ctx, category.ID, name, embedding); err != nil {
			return seeded, fmt.Errorf("failed to index category %q: %w", name, err)
		}

		seeded++
	}

	logger.With(logger.Fields{
		logger.FieldCount: seeded,
	}).Info(ctx, "Category seeding completed")

	return seeded, nil
}

// DefaultCategoryNames is the stock category list used when no custom list
// is supplied to the seeder.
var DefaultCategoryNames = []string{
	"Anime", "Fantasy", "Abstract", "Science Fiction", "Space",
	"Cyberpunk", "Steampunk", "Underwater", "Apocalyptic", "Virtual Reality",
	"Alien Worlds", "Robotics", "Futuristic Cities", "Biomechanical", "Surrealism",
	"Dreamscapes", "Mythological Creatures", "Utopian Visions", "Dystopian Visions", "Interstellar",
	"Deep Space", "Time Travel", "Parallel Universes", "Quantum Realities", "Artificial Intelligence",
	"Digital Landscapes", "Augmented Reality", "Mystical Forests", "Magical Realism", "Neon Noir",
	"Post-Human", "Concept Art", "Character Design", "Creature Design", "Tech Noir",
	"Space Opera", "High Fantasy", "Dark Fantasy", "Historical Fantasy", "Prehistoric",
	"Ancient Civilizations", "Retrofuturism", "Nano Art", "Macro World", "Microbiology",
	"Genetic Art", "Psychedelic", "Therapeutic Art", "Mandala", "Zentangle",
	"Kinetic Art", "Optical Illusions", "3D Art", "Hyperrealism", "Matte Painting",
	"Landscape", "Seascape", "Cityscape", "Arctic Wonders", "Desert Mirage",
	"Jungle", "Mountainous", "Extraterrestrial Life", "Supernatural", "Cosmic Horror",
	"Gothic", "Medieval", "Renaissance", "Baroque", "Victorian",
	"Modernism", "Impressionism", "Cubism", "Expressionism", "Pointillism",
	"Fauvism", "Dadaism", "Pop Art", "Minimalism", "Abstract Expressionism",
	"Color Field", "Street Art", "Graffiti", "Digital Collage", "Conceptual Art",
	"Performance Art", "Installation Art", "Eco Art", "Political Art", "Comic Style",
	"Graphic Novel", "Manga", "Kawaii", "Chibi", "Steam Age",
	"Silicon Age", "Information Age", "Network Society", "Autonomous Art", "Generative Art",
	"Crypto Art", "Voxel Art", "Pixel Art", "Glitch Art",
}

package service

import (
	"context"
	"fmt"

	"github.com/dasha/promptfolio/internal/logger"
)

// AssociationStore is the slice of the category repository the tagger needs.
type AssociationStore interface {
	CreateAssociations(ctx context.Context, artID uint, categoryIDs []uint) error
}

// TaggerConfig holds configuration for the auto-tagger.
type TaggerConfig struct {
	// CategoryThreshold is the exclusive distance bound for accepting a
	// category. Stricter than search: tags are opt-in, not loose matches.
	CategoryThreshold float32
}

// TaggerService derives category associations for new art from the semantic
// similarity between its prompt and the seeded category names. It also keeps
// the prompt index current by upserting each new prompt's embedding.
type TaggerService struct {
	prompts      VectorStore
	categories   VectorStore
	associations AssociationStore
	embedding    EmbeddingProvider
	threshold    float32
	// categoryBreadth bounds the category query; the seeded set is small
	// and fixed, so this comfortably covers all of it.
	categoryBreadth int
}

// NewTaggerService creates a new auto-tagger.
func NewTaggerService(
	prompts VectorStore,
	categories VectorStore,
	associations AssociationStore,
	embedding EmbeddingProvider,
	cfg *TaggerConfig,
) *TaggerService {
	threshold := float32(0.35)
	if cfg != nil && cfg.CategoryThreshold > 0 {
		threshold = cfg.CategoryThreshold
	}
	return &TaggerService{
		prompts:         prompts,
		categories:      categories,
		associations:    associations,
		embedding:       embedding,
		threshold:       threshold,
		categoryBreadth: 256,
	}
}

// Tag indexes the prompt of a freshly created art record and links the art to
// every seeded category within the distance threshold. Zero accepted
// categories is a normal outcome. Callers run this after the art row is
// durable; a failure here must not undo the creation.
func (s *TaggerService) Tag(ctx context.Context, artID uint, prompt string) ([]uint, error) {
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldComponent: "tagger",
		logger.FieldArtID:     artID,
	})

	embedding, err := s.embedding.Embed(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to embed prompt: %w", err)
	}

	// Keep the search index current before categorizing. If this fails the
	// categorization still proceeds; the index stays rebuildable either way.
	if err := s.prompts.Upsert(ctx, artID, prompt, embedding); err != nil {
		logger.CtxError(ctx, "Failed to upsert prompt embedding: error=%v", err)
	}

	neighbors, err := s.categories.Query(ctx, embedding, s.categoryBreadth)
	if err != nil {
		return nil, fmt.Errorf("failed to query category index: %w", err)
	}

	categoryIDs, err := FilterByDistance(neighbors, s.threshold)
	if err != nil {
		logger.CtxError(ctx, "Category index returned unparseable id: error=%v", err)
		return nil, err
	}

	if len(categoryIDs) == 0 {
		logger.CtxInfo(ctx, "No category cleared the threshold")
		return []uint{}, nil
	}

	if err := s.associations.CreateAssociations(ctx, artID, categoryIDs); err != nil {
		return nil, fmt.Errorf("failed to create category associations: %w", err)
	}

	logger.With(logger.Fields{
		logger.FieldCount: len(categoryIDs),
	}).Info(ctx, "Auto-tagged art")

	return categoryIDs, nil
}

package service

import (
	"context"

	"github.com/dasha/promptfolio/internal/repository"
)

// EmbeddingProvider generates embeddings for text. Implemented by
// EmbeddingService; tests substitute fakes.
type EmbeddingProvider interface {
	// Embed generates an embedding for stored text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedQuery generates an embedding optimized for search queries.
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// VectorStore is one named collection of the external vector index.
// Implemented by repository.VectorCollection.
type VectorStore interface {
	// Upsert stores the embedding for a record keyed by its numeric identity.
	Upsert(ctx context.Context, id uint, text string, vector []float32) error
	// Query returns nearest neighbors ordered by ascending distance.
	Query(ctx context.Context, vector []float32, limit int) ([]repository.Neighbor, error)
}

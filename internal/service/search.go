package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/dasha/promptfolio/internal/domain"
	"github.com/dasha/promptfolio/internal/logger"
)

// ArtStore is the slice of the art repository the search service needs.
type ArtStore interface {
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Art, error)
}

// SearchHistoryRecorder records issued queries; failures are non-fatal.
type SearchHistoryRecorder interface {
	AddSearchHistory(ctx context.Context, userID uint, query string) error
}

// SearchServiceConfig holds configuration for the search service.
type SearchServiceConfig struct {
	// PromptThreshold is the exclusive distance bound for a match.
	PromptThreshold float32
	// Breadth is the neighbor count requested from the index; it must be
	// large enough that the threshold cut never truncates before k.
	Breadth int
}

// SearchService answers semantic searches over stored prompts.
type SearchService struct {
	arts      ArtStore
	prompts   VectorStore
	embedding EmbeddingProvider
	history   SearchHistoryRecorder
	threshold float32
	breadth   int
}

// NewSearchService creates a new search service.
func NewSearchService(
	arts ArtStore,
	prompts VectorStore,
	embedding EmbeddingProvider,
	history SearchHistoryRecorder,
	cfg *SearchServiceConfig,
) *SearchService {
	threshold := float32(0.47)
	breadth := 1000
	if cfg != nil {
		if cfg.PromptThreshold > 0 {
			threshold = cfg.PromptThreshold
		}
		if cfg.Breadth > 0 {
			breadth = cfg.Breadth
		}
	}
	return &SearchService{
		arts:      arts,
		prompts:   prompts,
		embedding: embedding,
		history:   history,
		threshold: threshold,
		breadth:   breadth,
	}
}

// Search returns art records whose prompts are semantically close to query,
// ordered by ascending distance. No match is a normal empty result, never an
// error. When userID is set the query is recorded in search history.
func (s *SearchService) Search(ctx context.Context, query string, userID *uint) ([]domain.Art, error) {
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldComponent: "search",
	})

	embedding, err := s.embedding.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	neighbors, err := s.prompts.Query(ctx, embedding, s.breadth)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompt index: %w", err)
	}

	ids, err := FilterByDistance(neighbors, s.threshold)
	if err != nil {
		// Index/store drift; fatal to this request
		logger.CtxError(ctx, "Prompt index returned unparseable id: query=%q, error=%v", query, err)
		return nil, err
	}

	logger.CtxInfo(ctx, "Search filtered: query=%q, neighbors=%d, matches=%d",
		query, len(neighbors), len(ids))

	s.recordHistory(ctx, userID, query)

	if len(ids) == 0 {
		return []domain.Art{}, nil
	}

	arts, err := s.arts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load matched arts: %w", err)
	}

	return reorderByRank(arts, ids), nil
}

// reorderByRank sorts fetched rows into the rank order of ids. The bulk fetch
// comes back in storage order, so an explicit rank map is required.
func reorderByRank(arts []domain.Art, ids []uint) []domain.Art {
	rank := make(map[uint]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	sort.Slice(arts, func(i, j int) bool {
		return rank[arts[i].ID] < rank[arts[j].ID]
	})
	return arts
}

func (s *SearchService) recordHistory(ctx context.Context, userID *uint, query string) {
	if userID == nil || s.history == nil {
		return
	}
	if err := s.history.AddSearchHistory(ctx, *userID, query); err != nil {
		logger.CtxWarn(ctx, "Failed to record search history: user_id=%d, error=%v", *userID, err)
	}
}

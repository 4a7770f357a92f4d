package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/dasha/promptfolio/internal/domain"
	"github.com/dasha/promptfolio/internal/logger"
	"github.com/dasha/promptfolio/internal/repository"
	"github.com/dasha/promptfolio/internal/storage"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// Tagger derives category associations for a new art record from its prompt.
// Implemented by TaggerService; tests substitute fakes.
type Tagger interface {
	Tag(ctx context.Context, artID uint, prompt string) ([]uint, error)
}

// ArtService handles art creation and retrieval.
type ArtService struct {
	arts         *repository.ArtRepository
	interactions *repository.InteractionRepository
	storage      storage.ObjectStorage
	tagger       Tagger
}

// NewArtService creates a new art service.
func NewArtService(
	arts *repository.ArtRepository,
	interactions *repository.InteractionRepository,
	objectStorage storage.ObjectStorage,
	tagger Tagger,
) *ArtService {
	return &ArtService{
		arts:         arts,
		interactions: interactions,
		storage:      objectStorage,
		tagger:       tagger,
	}
}

// CreateArtInput carries one uploaded artwork.
type CreateArtInput struct {
	Prompt      string
	FileName    string
	ContentType string
	Reader      io.Reader
	OwnerID     *uint
	Premium     bool
}

// Create stores the uploaded image, persists the art record, and kicks off
// auto-tagging in the background. The returned record is durable before the
// tagger runs; a search racing the index upsert may not see the new art yet,
// which is an accepted eventual-consistency window.
func (s *ArtService) Create(ctx context.Context, input *CreateArtInput) (*domain.Art, error) {
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, fmt.Errorf("prompt must not be empty")
	}

	data, err := io.ReadAll(input.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image must not be empty")
	}

	width, height, format := decodeDimensions(data)

	key := fmt.Sprintf("arts/%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(input.FileName)))
	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	art := &domain.Art{
		Prompt:  input.Prompt,
		Image:   s.storage.GetURL(key),
		OwnerID: input.OwnerID,
		Premium: input.Premium,
		Width:   width,
		Height:  height,
		Format:  format,
	}
	if err := s.arts.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("failed to create art record: %w", err)
	}

	// Best-effort enrichment, detached from the request lifetime so a client
	// disconnect cannot orphan a half-tagged record.
	go func(artID uint, prompt string) {
		bgCtx := logger.WithFields(context.Background(), logger.Fields{
			logger.FieldRequestID: logger.GetRequestID(ctx),
		})
		if _, err := s.tagger.Tag(bgCtx, artID, prompt); err != nil {
			logger.CtxError(bgCtx, "Auto-tagging failed: art_id=%d, error=%v", artID, err)
		}
	}(art.ID, art.Prompt)

	return art, nil
}

// Get retrieves an art record, recording a view when a viewer is known.
func (s *ArtService) Get(ctx context.Context, id uint, viewerID *uint) (*domain.Art, error) {
	art, err := s.arts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != nil && s.interactions != nil {
		if err := s.interactions.AddArtHistory(ctx, *viewerID, id); err != nil {
			logger.CtxWarn(ctx, "Failed to record art view: art_id=%d, error=%v", id, err)
		}
	}

	return art, nil
}

// List retrieves art records with pagination in storage order.
func (s *ArtService) List(ctx context.Context, skip, limit int) ([]domain.Art, error) {
	skip, limit = clampPage(skip, limit)
	return s.arts.List(ctx, skip, limit)
}

// ListByOwner retrieves one user's art records with pagination.
func (s *ArtService) ListByOwner(ctx context.Context, ownerID uint, skip, limit int) ([]domain.Art, error) {
	skip, limit = clampPage(skip, limit)
	return s.arts.ListByOwner(ctx, ownerID, skip, limit)
}

// Count returns the total number of art records.
func (s *ArtService) Count(ctx context.Context) (int64, error) {
	return s.arts.Count(ctx)
}

// CountLikes returns the number of likes for an art record.
func (s *ArtService) CountLikes(ctx context.Context, artID uint) (int64, error) {
	return s.interactions.CountLikes(ctx, artID)
}

func clampPage(skip, limit int) (int, int) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

// decodeDimensions reads image dimensions without decoding pixels.
// Unrecognized formats are tolerated; dimensions stay zero.
func decodeDimensions(data []byte) (width, height int, format string) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, ""
	}
	return cfg.Width, cfg.Height, format
}

package service

import (
	"context"
	"testing"

	"github.com/dasha/promptfolio/internal/repository"
)

type fakeAssociations struct {
	artID       uint
	categoryIDs []uint
	calls       int
}

func (f *fakeAssociations) CreateAssociations(ctx context.Context, artID uint, categoryIDs []uint) error {
	f.artID = artID
	f.categoryIDs = categoryIDs
	f.calls++
	return nil
}

func TestTagAcceptsOnlyCloseCategories(t *testing.T) {
	prompts := &fakeVectorStore{}
	categories := &fakeVectorStore{neighbors: []repository.Neighbor{
		{ID: "11", Distance: 0.2},
		{ID: "12", Distance: 0.4},
		{ID: "13", Distance: 0.5},
	}}
	associations := &fakeAssociations{}

	svc := NewTaggerService(prompts, categories, associations, &fakeEmbedding{vector: []float32{0.1}}, nil)

	got, err := svc.Tag(context.Background(), 7, "a watercolor fox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only distance 0.2 clears the 0.35 bound.
	if len(got) != 1 || got[0] != 11 {
		t.Errorf("expected [11], got %v", got)
	}
	if associations.calls != 1 {
		t.Fatalf("expected one association write, got %d", associations.calls)
	}
	if associations.artID != 7 {
		t.Errorf("expected associations for art 7, got %d", associations.artID)
	}
}

func TestTagIndexesPrompt(t *testing.T) {
	prompts := &fakeVectorStore{}
	categories := &fakeVectorStore{}
	associations := &fakeAssociations{}

	svc := NewTaggerService(prompts, categories, associations, &fakeEmbedding{vector: []float32{0.1}}, nil)

	if _, err := svc.Tag(context.Background(), 9, "oil painting of a harbor"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prompts.upserts) != 1 || prompts.upserts[0] != 9 {
		t.Errorf("expected prompt upsert for id 9, got %v", prompts.upserts)
	}
}

func TestTagNoCategoryIsNotAnError(t *testing.T) {
	categories := &fakeVectorStore{neighbors: []repository.Neighbor{
		{ID: "11", Distance: 0.8},
	}}
	associations := &fakeAssociations{}

	svc := NewTaggerService(&fakeVectorStore{}, categories, associations, &fakeEmbedding{vector: []float32{0.1}}, nil)

	got, err := svc.Tag(context.Background(), 3, "abstract shapes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
	if associations.calls != 0 {
		t.Errorf("no association write expected, got %d calls", associations.calls)
	}
}

func TestTagCustomThreshold(t *testing.T) {
	categories := &fakeVectorStore{neighbors: []repository.Neighbor{
		{ID: "11", Distance: 0.2},
		{ID: "12", Distance: 0.4},
	}}
	associations := &fakeAssociations{}

	svc := NewTaggerService(&fakeVectorStore{}, categories, associations, &fakeEmbedding{vector: []float32{0.1}},
		&TaggerConfig{CategoryThreshold: 0.45})

	got, err := svc.Tag(context.Background(), 5, "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected both categories under the relaxed bound, got %v", got)
	}
}

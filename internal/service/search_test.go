package service

import (
	"context"
	"testing"

	"github.com/dasha/promptfolio/internal/domain"
	"github.com/dasha/promptfolio/internal/repository"
)

type fakeEmbedding struct {
	vector []float32
}

func (f *fakeEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vector, nil
}

func (f *fakeEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return f.vector, nil
}

type fakeVectorStore struct {
	neighbors []repository.Neighbor
	upserts   []uint
}

func (f *fakeVectorStore) Upsert(ctx context.Context, id uint, text string, vector []float32) error {
	f.upserts = append(f.upserts, id)
	return nil
}

func (f *fakeVectorStore) Query(ctx context.Context, vector []float32, limit int) ([]repository.Neighbor, error) {
	if limit < len(f.neighbors) {
		return f.neighbors[:limit], nil
	}
	return f.neighbors, nil
}

type fakeArtStore struct {
	arts []domain.Art
}

// GetByIDs returns matching rows in storage (id ascending) order, the way a
// bulk WHERE IN fetch does.
func (f *fakeArtStore) GetByIDs(ctx context.Context, ids []uint) ([]domain.Art, error) {
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []domain.Art
	for _, a := range f.arts {
		if wanted[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeHistory struct {
	queries []string
	userIDs []uint
}

func (f *fakeHistory) AddSearchHistory(ctx context.Context, userID uint, query string) error {
	f.userIDs = append(f.userIDs, userID)
	f.queries = append(f.queries, query)
	return nil
}

func TestSearchOrdersByDistance(t *testing.T) {
	// Storage order is 1,2,3 but similarity order is 3,1,2.
	arts := &fakeArtStore{arts: []domain.Art{
		{ID: 1, Prompt: "a castle in the clouds"},
		{ID: 2, Prompt: "a fox in the snow"},
		{ID: 3, Prompt: "a castle at sunset"},
	}}
	prompts := &fakeVectorStore{neighbors: []repository.Neighbor{
		{ID: "3", Distance: 0.05},
		{ID: "1", Distance: 0.2},
		{ID: "2", Distance: 0.4},
	}}

	svc := NewSearchService(arts, prompts, &fakeEmbedding{vector: []float32{0.1}}, nil, nil)

	got, err := svc.Search(context.Background(), "castle", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []uint{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.ID != want[i] {
			t.Errorf("position %d: got id %d, want %d", i, a.ID, want[i])
		}
	}
}

func TestSearchThresholdCutsResults(t *testing.T) {
	arts := &fakeArtStore{arts: []domain.Art{
		{ID: 1, Prompt: "close match"},
		{ID: 2, Prompt: "far match"},
	}}
	prompts := &fakeVectorStore{neighbors: []repository.Neighbor{
		{ID: "1", Distance: 0.1},
		{ID: "2", Distance: 0.6},
	}}

	svc := NewSearchService(arts, prompts, &fakeEmbedding{vector: []float32{0.1}}, nil, nil)

	got, err := svc.Search(context.Background(), "query", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only id 1, got %v", got)
	}
}

func TestSearchNoMatchReturnsEmptySlice(t *testing.T) {
	arts := &fakeArtStore{}
	prompts := &fakeVectorStore{neighbors: []repository.Neighbor{
		{ID: "1", Distance: 0.9},
	}}

	svc := NewSearchService(arts, prompts, &fakeEmbedding{vector: []float32{0.1}}, nil, nil)

	got, err := svc.Search(context.Background(), "nothing like this", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
}

func TestSearchMalformedIndexIDFailsRequest(t *testing.T) {
	arts := &fakeArtStore{}
	prompts := &fakeVectorStore{neighbors: []repository.Neighbor{
		{ID: "oops", Distance: 0.1},
	}}

	svc := NewSearchService(arts, prompts, &fakeEmbedding{vector: []float32{0.1}}, nil, nil)

	if _, err := svc.Search(context.Background(), "query", nil); err == nil {
		t.Fatal("expected error for malformed index id")
	}
}

func TestSearchRecordsHistoryForKnownUser(t *testing.T) {
	arts := &fakeArtStore{}
	prompts := &fakeVectorStore{}
	history := &fakeHistory{}

	svc := NewSearchService(arts, prompts, &fakeEmbedding{vector: []float32{0.1}}, history, nil)

	userID := uint(42)
	if _, err := svc.Search(context.Background(), "dragons", &userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(history.queries) != 1 || history.queries[0] != "dragons" {
		t.Errorf("expected one recorded query %q, got %v", "dragons", history.queries)
	}
	if len(history.userIDs) != 1 || history.userIDs[0] != 42 {
		t.Errorf("expected recorded user 42, got %v", history.userIDs)
	}
}

func TestSearchAnonymousSkipsHistory(t *testing.T) {
	history := &fakeHistory{}
	svc := NewSearchService(&fakeArtStore{}, &fakeVectorStore{}, &fakeEmbedding{vector: []float32{0.1}}, history, nil)

	if _, err := svc.Search(context.Background(), "dragons", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.queries) != 0 {
		t.Errorf("anonymous search should not record history, got %v", history.queries)
	}
}

func TestReorderByRank(t *testing.T) {
	arts := []domain.Art{
		{ID: 10},
		{ID: 20},
		{ID: 30},
	}

	got := reorderByRank(arts, []uint{30, 10, 20})
	want := []uint{30, 10, 20}
	for i, a := range got {
		if a.ID != want[i] {
			t.Errorf("position %d: got id %d, want %d", i, a.ID, want[i])
		}
	}
}

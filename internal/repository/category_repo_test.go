package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dasha/promptfolio/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedCategories(t *testing.T, repo *CategoryRepository, names ...string) []uint {
	t.Helper()
	ctx := context.Background()
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		c, err := repo.UpsertByName(ctx, name)
		if err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
		ids = append(ids, c.ID)
	}
	return ids
}

func TestUpsertByNameIdempotent(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.UpsertByName(ctx, "Impressionism")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.UpsertByName(ctx, "Impressionism")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("reseeding created a duplicate: %d vs %d", first.ID, second.ID)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected one category, got %d", len(all))
	}
}

func TestCreateAssociationsIdempotent(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()

	ids := seedCategories(t, repo, "Surrealism", "Cyberpunk")

	if err := repo.CreateAssociations(ctx, 1, ids); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A retried tagging run must not fail or duplicate.
	if err := repo.CreateAssociations(ctx, 1, ids); err != nil {
		t.Fatalf("retry failed: %v", err)
	}

	got, err := repo.GetAssociatedCategoryIDs(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 associations, got %d", len(got))
	}
}

func TestTopCategories(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()

	ids := seedCategories(t, repo, "Portrait", "Landscape", "Abstract")

	// Portrait tagged on 3 arts, Landscape on 2, Abstract on 1.
	for artID := uint(1); artID <= 3; artID++ {
		if err := repo.CreateAssociations(ctx, artID, []uint{ids[0]}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for artID := uint(1); artID <= 2; artID++ {
		if err := repo.CreateAssociations(ctx, artID, []uint{ids[1]}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := repo.CreateAssociations(ctx, 1, []uint{ids[2]}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts, err := repo.TopCategories(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.CategoryCount{
		{Name: "Portrait", Count: 3},
		{Name: "Landscape", Count: 2},
		{Name: "Abstract", Count: 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("got %d rows, want %d", len(counts), len(want))
	}
	for i := range want {
		if counts[i].Name != want[i].Name || counts[i].Count != want[i].Count {
			t.Errorf("row %d: got %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestTopCategoriesCap(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()

	names := []string{
		"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L",
	}
	ids := seedCategories(t, repo, names...)
	if err := repo.CreateAssociations(ctx, 1, ids); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts, err := repo.TopCategories(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 10 {
		t.Errorf("expected the cap of 10 rows, got %d", len(counts))
	}
}

func TestTopCategoriesEmpty(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	counts, err := repo.TopCategories(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected no rows, got %d", len(counts))
	}
}

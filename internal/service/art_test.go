package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dasha/promptfolio/internal/repository"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newArtTestRepos(t *testing.T) (*repository.ArtRepository, *repository.InteractionRepository) {
	t.Helper()
	db := newServiceTestDB(t)
	return repository.NewArtRepository(db), repository.NewInteractionRepository(db)
}

type fakeObjectStorage struct {
	keys []string
}

func (s *fakeObjectStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}
	s.keys = append(s.keys, key)
	return nil
}

func (s *fakeObjectStorage) GetURL(key string) string {
	return "https://cdn.test/" + key
}

type failingTagger struct {
	called chan taggerCall
}

type taggerCall struct {
	artID  uint
	prompt string
}

func (f *failingTagger) Tag(_ context.Context, artID uint, prompt string) ([]uint, error) {
	f.called <- taggerCall{artID: artID, prompt: prompt}
	return nil, fmt.Errorf("embedding provider unavailable")
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestArtCreateSurvivesTaggerFailure(t *testing.T) {
	arts, interactions := newArtTestRepos(t)
	objects := &fakeObjectStorage{}
	tagger := &failingTagger{called: make(chan taggerCall, 1)}

	svc := NewArtService(arts, interactions, objects, tagger)

	art, err := svc.Create(context.Background(), &CreateArtInput{
		Prompt:   "a lighthouse in fog",
		FileName: "lighthouse.png",
		Reader:   bytes.NewReader(pngBytes(t, 2, 3)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.ID == 0 {
		t.Fatal("expected persisted art to carry an ID")
	}

	select {
	case call := <-tagger.called:
		if call.artID != art.ID {
			t.Errorf("tagger got art ID %d, want %d", call.artID, art.ID)
		}
		if call.prompt != "a lighthouse in fog" {
			t.Errorf("tagger got prompt %q", call.prompt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tagger was never invoked")
	}

	stored, err := arts.GetByID(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("art record not durable after tagger failure: %v", err)
	}
	if stored.Prompt != "a lighthouse in fog" {
		t.Errorf("stored prompt = %q", stored.Prompt)
	}
}

func TestArtCreateStoresImageAndDimensions(t *testing.T) {
	arts, interactions := newArtTestRepos(t)
	objects := &fakeObjectStorage{}
	tagger := &failingTagger{called: make(chan taggerCall, 1)}

	svc := NewArtService(arts, interactions, objects, tagger)

	art, err := svc.Create(context.Background(), &CreateArtInput{
		Prompt:      "tiny canvas",
		FileName:    "Tiny.PNG",
		ContentType: "image/png",
		Reader:      bytes.NewReader(pngBytes(t, 2, 3)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(objects.keys) != 1 {
		t.Fatalf("expected one uploaded object, got %d", len(objects.keys))
	}
	key := objects.keys[0]
	if !strings.HasPrefix(key, "arts/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("unexpected object key %q", key)
	}
	if art.Image != objects.GetURL(key) {
		t.Errorf("art image URL = %q, want %q", art.Image, objects.GetURL(key))
	}
	if art.Width != 2 || art.Height != 3 || art.Format != "png" {
		t.Errorf("dimensions = %dx%d %q, want 2x3 png", art.Width, art.Height, art.Format)
	}
	<-tagger.called
}

func TestArtCreateToleratesUnrecognizedImage(t *testing.T) {
	arts, interactions := newArtTestRepos(t)
	objects := &fakeObjectStorage{}
	tagger := &failingTagger{called: make(chan taggerCall, 1)}

	svc := NewArtService(arts, interactions, objects, tagger)

	art, err := svc.Create(context.Background(), &CreateArtInput{
		Prompt:   "not really an image",
		FileName: "blob.bin",
		Reader:   strings.NewReader("definitely not pixels"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.Width != 0 || art.Height != 0 || art.Format != "" {
		t.Errorf("dimensions = %dx%d %q, want zero values", art.Width, art.Height, art.Format)
	}
	<-tagger.called
}

func TestArtCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input *CreateArtInput
	}{
		{
			name: "empty prompt",
			input: &CreateArtInput{
				Prompt:   "",
				FileName: "a.png",
				Reader:   bytes.NewReader([]byte{1, 2, 3}),
			},
		},
		{
			name: "whitespace prompt",
			input: &CreateArtInput{
				Prompt:   "   \t",
				FileName: "a.png",
				Reader:   bytes.NewReader([]byte{1, 2, 3}),
			},
		},
		{
			name: "empty image",
			input: &CreateArtInput{
				Prompt:   "a prompt",
				FileName: "a.png",
				Reader:   bytes.NewReader(nil),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arts, interactions := newArtTestRepos(t)
			svc := NewArtService(arts, interactions, &fakeObjectStorage{}, &failingTagger{called: make(chan taggerCall, 1)})

			if _, err := svc.Create(context.Background(), tt.input); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

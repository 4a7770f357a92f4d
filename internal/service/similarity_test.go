package service

import (
	"errors"
	"testing"

	"github.com/dasha/promptfolio/internal/repository"
)

func TestFilterByDistance(t *testing.T) {
	testCases := []struct {
		name      string
		neighbors []repository.Neighbor
		threshold float32
		want      []uint
	}{
		{
			name:      "empty input",
			neighbors: []repository.Neighbor{},
			threshold: 0.47,
			want:      []uint{},
		},
		{
			name: "keeps below threshold drops at and above",
			neighbors: []repository.Neighbor{
				{ID: "1", Distance: 0.1},
				{ID: "2", Distance: 0.47},
				{ID: "3", Distance: 0.5},
			},
			threshold: 0.47,
			want:      []uint{1},
		},
		{
			name: "threshold is exclusive",
			neighbors: []repository.Neighbor{
				{ID: "7", Distance: 0.35},
			},
			threshold: 0.35,
			want:      []uint{},
		},
		{
			name: "preserves order",
			neighbors: []repository.Neighbor{
				{ID: "30", Distance: 0.05},
				{ID: "10", Distance: 0.2},
				{ID: "20", Distance: 0.3},
			},
			threshold: 0.47,
			want:      []uint{30, 10, 20},
		},
		{
			name: "rejected id does not break order of survivors",
			neighbors: []repository.Neighbor{
				{ID: "1", Distance: 0.1},
				{ID: "2", Distance: 0.9},
				{ID: "3", Distance: 0.2},
			},
			threshold: 0.47,
			want:      []uint{1, 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FilterByDistance(tc.neighbors, tc.threshold)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("position %d: got %d, want %d", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestFilterByDistanceIdempotent(t *testing.T) {
	neighbors := []repository.Neighbor{
		{ID: "5", Distance: 0.1},
		{ID: "6", Distance: 0.2},
	}

	first, err := FilterByDistance(neighbors, 0.47)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := FilterByDistance(neighbors, 0.47)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("repeated filtering disagreed: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestFilterByDistanceMalformedID(t *testing.T) {
	neighbors := []repository.Neighbor{
		{ID: "1", Distance: 0.1},
		{ID: "not-a-number", Distance: 0.2},
	}

	_, err := FilterByDistance(neighbors, 0.47)
	if err == nil {
		t.Fatal("expected error for malformed id")
	}
	if !errors.Is(err, ErrMalformedNeighborID) {
		t.Errorf("expected ErrMalformedNeighborID, got %v", err)
	}
}

func TestFilterByDistanceMalformedAboveThreshold(t *testing.T) {
	// An unparseable id that is already outside the threshold never reaches
	// parsing, so it does not fail the request.
	neighbors := []repository.Neighbor{
		{ID: "1", Distance: 0.1},
		{ID: "garbage", Distance: 0.9},
	}

	got, err := FilterByDistance(neighbors, 0.47)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want [1]", got)
	}
}

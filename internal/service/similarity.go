package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dasha/promptfolio/internal/repository"
)

// ErrMalformedNeighborID reports a vector-index id that cannot be parsed back
// into a record identity. Only this system writes the index, so a malformed
// id means the index and the relational store have drifted; it must surface
// loudly rather than being dropped.
var ErrMalformedNeighborID = errors.New("malformed vector index id")

// FilterByDistance converts a neighbor list ordered by ascending distance
// into the ordered record ids whose distance is strictly below threshold.
// Relative order is preserved; ids at or above the threshold produce nothing.
// An empty input, or one where nothing clears the threshold, yields an empty
// slice, not an error.
func FilterByDistance(neighbors []repository.Neighbor, threshold float32) ([]uint, error) {
	ids := make([]uint, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Distance >= threshold {
			continue
		}
		id, err := strconv.ParseUint(n.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedNeighborID, n.ID)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

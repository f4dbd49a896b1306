package section

import "sort"

// Position pairs a section id with the offset where it starts.
type Position struct {
	ID  string
	Top int
}

// Resolve returns the id of the last section in document order whose top is
// at or above scrollPosition. ok is false when the reader is above every
// section.
func Resolve(positions []Position, scrollPosition int) (id string, ok bool) {
	for i := len(positions) - 1; i >= 0; i-- {
		if positions[i].Top <= scrollPosition {
			return positions[i].ID, true
		}
	}
	return "", false
}

// ResolveSorted is Resolve for positions sorted by Top ascending (stable with
// respect to document order). It finds the greatest top not exceeding
// scrollPosition with a binary search; among equal tops the later section wins.
func ResolveSorted(positions []Position, scrollPosition int) (id string, ok bool) {
	// First index whose top is strictly greater; the one before it is the
	// last section that starts at or above the position.
	i := sort.Search(len(positions), func(i int) bool {
		return positions[i].Top > scrollPosition
	})
	if i == 0 {
		return "", false
	}
	return positions[i-1].ID, true
}

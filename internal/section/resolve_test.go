package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAndResolveSortedAgree(t *testing.T) {
	positions := []Position{
		{ID: "home", Top: 0},
		{ID: "about", Top: 800},
		{ID: "experience", Top: 800},
		{ID: "projects", Top: 1500},
	}

	for _, pos := range []int{-1, 0, 799, 800, 801, 1499, 1500, 9000} {
		linearID, linearOK := Resolve(positions, pos)
		sortedID, sortedOK := ResolveSorted(positions, pos)
		assert.Equal(t, linearOK, sortedOK, "position %d", pos)
		assert.Equal(t, linearID, sortedID, "position %d", pos)
	}
}

func TestResolveAboveFirstSection(t *testing.T) {
	_, ok := Resolve([]Position{{ID: "home", Top: 100}}, 99)
	assert.False(t, ok)

	_, ok = ResolveSorted(nil, 0)
	assert.False(t, ok)
}

func TestResolveTieGoesToLaterSection(t *testing.T) {
	positions := []Position{{ID: "a", Top: 10}, {ID: "b", Top: 10}}

	id, ok := Resolve(positions, 10)
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	id, ok = ResolveSorted(positions, 10)
	assert.True(t, ok)
	assert.Equal(t, "b", id)
}

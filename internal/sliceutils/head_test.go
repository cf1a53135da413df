package sliceutils_test

import (
	"testing"

	"github.com/habiliai/agenteval/internal/sliceutils"
	"github.com/stretchr/testify/assert"
)

func TestHead(t *testing.T) {
	t.Run("Given a slice longer than n, when taking head, then return n elements", func(t *testing.T) {
		assert.Equal(t, []int{1, 2}, sliceutils.Head([]int{1, 2, 3}, 2))
	})

	t.Run("Given a slice shorter than n, when taking head, then return all elements", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, sliceutils.Head([]int{1, 2, 3}, 5))
	})

	t.Run("Given n <= 0, when taking head, then return empty", func(t *testing.T) {
		assert.Empty(t, sliceutils.Head([]int{1, 2, 3}, 0))
		assert.Empty(t, sliceutils.Head([]int{1, 2, 3}, -1))
	})
}

func TestClone(t *testing.T) {
	src := []string{"a", "b"}
	dst := sliceutils.Clone(src)
	dst[0] = "z"
	assert.Equal(t, "a", src[0])
	assert.Nil(t, sliceutils.Clone[string](nil))
}

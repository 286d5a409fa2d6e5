package repositories

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdAllocator(t *testing.T) {
	ids := NewIdAllocator()

	t.Run("first ids are zero", func(t *testing.T) {
		assert.Equal(t, uint64(0), ids.NextPostID())
		assert.Equal(t, uint64(0), ids.NextCommentID())
	})

	t.Run("sequential ids", func(t *testing.T) {
		for i := uint64(1); i <= 5; i++ {
			assert.Equal(t, i, ids.NextPostID())
		}
	})

	t.Run("counters are independent", func(t *testing.T) {
		assert.Equal(t, uint64(1), ids.NextCommentID())
		nextPost, nextComment := ids.Counters()
		assert.Equal(t, uint64(6), nextPost)
		assert.Equal(t, uint64(2), nextComment)
	})

	t.Run("restore", func(t *testing.T) {
		ids.Restore(100, 200)
		assert.Equal(t, uint64(100), ids.NextPostID())
		assert.Equal(t, uint64(200), ids.NextCommentID())
	})
}

func TestSequenceOverflowPanics(t *testing.T) {
	s := Sequence{next: math.MaxUint64}
	assert.Panics(t, func() { s.Next() })
}

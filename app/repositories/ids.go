package repositories

import "math"

// Sequence is a monotonic counter starting at zero. It is not safe for
// concurrent use; the host serializes every write call.
type Sequence struct {
	next uint64
}

// Next returns the current value and advances the counter.
func (s *Sequence) Next() uint64 {
	if s.next == math.MaxUint64 {
		panic("repositories: id sequence exhausted")
	}
	id := s.next
	s.next++
	return id
}

// Peek returns the value the next call to Next will hand out.
func (s *Sequence) Peek() uint64 {
	return s.next
}

// IdAllocator issues post and comment ids from two independent sequences.
type IdAllocator struct {
	posts    Sequence
	comments Sequence
}

// NewIdAllocator creates an allocator with both counters at zero.
func NewIdAllocator() *IdAllocator {
	return &IdAllocator{}
}

func (a *IdAllocator) NextPostID() uint64    { return a.posts.Next() }
func (a *IdAllocator) NextCommentID() uint64 { return a.comments.Next() }

// Counters returns the next post and comment ids without consuming them.
func (a *IdAllocator) Counters() (nextPost, nextComment uint64) {
	return a.posts.Peek(), a.comments.Peek()
}

// Restore resets both counters, used when loading a checkpoint.
func (a *IdAllocator) Restore(nextPost, nextComment uint64) {
	a.posts.next = nextPost
	a.comments.next = nextComment
}

package repositories

import "blogstore/app/models"

// MemoryPostRepository implements PostRepository over an ordered slice.
type MemoryPostRepository struct {
	posts []*models.Blog
}

// NewMemoryPostRepository creates an empty repository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

// Insert appends a post.
func (r *MemoryPostRepository) Insert(post *models.Blog) {
	r.posts = append(r.posts, post)
}

// GetByID returns the stored post with the given id.
func (r *MemoryPostRepository) GetByID(id uint64) (*models.Blog, bool) {
	for _, post := range r.posts {
		if post.ID == id {
			return post, true
		}
	}
	return nil, false
}

// List returns every post in insertion order.
func (r *MemoryPostRepository) List() []*models.Blog {
	return r.posts
}

// Delete removes the post with the given id, reporting whether it existed.
func (r *MemoryPostRepository) Delete(id uint64) bool {
	for i, post := range r.posts {
		if post.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored posts.
func (r *MemoryPostRepository) Len() int {
	return len(r.posts)
}

// Reset replaces the content with copies of posts.
func (r *MemoryPostRepository) Reset(posts []models.Blog) {
	r.posts = make([]*models.Blog, 0, len(posts))
	for i := range posts {
		post := posts[i].Clone()
		r.posts = append(r.posts, &post)
	}
}

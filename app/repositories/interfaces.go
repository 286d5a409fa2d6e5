package repositories

import "blogstore/app/models"

// PostRepository defines the interface for post storage. Posts are kept in
// insertion order; the pointers it returns alias stored values and must only
// be mutated on the write path.
type PostRepository interface {
	Insert(post *models.Blog)
	GetByID(id uint64) (*models.Blog, bool)
	List() []*models.Blog
	Delete(id uint64) bool
	Len() int
	Reset(posts []models.Blog)
}

// Checkpointer persists the full store state between write calls.
type Checkpointer interface {
	Save(snapshot models.Snapshot) error
	Load() (models.Snapshot, bool, error)
}

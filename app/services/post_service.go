package services

import (
	"time"

	"blogstore/app/models"
	"blogstore/app/repositories"
)

// Clock returns the current host time in nanoseconds since the Unix epoch.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().UnixNano())
}

// Options tune the ContentStore.
type Options struct {
	// EnforceCommentOwnership restricts comment edits and removals to the
	// comment's author. When false any caller may change any comment.
	EnforceCommentOwnership bool
	Clock                   Clock
}

// ContentStore handles business logic for posts and their comments. It owns
// every Blog and Comment value; callers only ever receive copies.
type ContentStore struct {
	posts  repositories.PostRepository
	config *repositories.ConfigStore
	ids    *repositories.IdAllocator
	opts   Options
}

// NewContentStore creates a new ContentStore
func NewContentStore(posts repositories.PostRepository, config *repositories.ConfigStore, ids *repositories.IdAllocator, opts Options) *ContentStore {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	return &ContentStore{
		posts:  posts,
		config: config,
		ids:    ids,
		opts:   opts,
	}
}

// CreatePost validates and stores a new post owned by caller.
func (s *ContentStore) CreatePost(caller models.Principal, title, content string, tags []string) (models.Blog, error) {
	if err := validateFields(s.config.Get(), &title, &content, &tags); err != nil {
		return models.Blog{}, err
	}

	post := models.NewBlog(s.ids.NextPostID(), caller, title, content, tags, s.opts.Clock())
	s.posts.Insert(post)
	return post.Clone(), nil
}

// EditPost updates the present fields of a post. All present fields are
// validated before any of them is applied.
func (s *ContentStore) EditPost(caller models.Principal, id uint64, title, content *string, tags *[]string) (models.Blog, error) {
	post, ok := s.posts.GetByID(id)
	if !ok {
		return models.Blog{}, models.ErrPostNotFound
	}
	if !IsOwner(caller, post.Owner) {
		return models.Blog{}, models.ErrForbiddenEditPost
	}
	if err := validateFields(s.config.Get(), title, content, tags); err != nil {
		return models.Blog{}, err
	}

	post.ApplyUpdate(title, content, tags)
	return post.Clone(), nil
}

// DeletePost removes a post and all of its comments.
func (s *ContentStore) DeletePost(caller models.Principal, id uint64) error {
	post, ok := s.posts.GetByID(id)
	if !ok {
		return models.ErrPostNotFound
	}
	if !IsOwner(caller, post.Owner) {
		return models.ErrForbiddenDeletePost
	}
	s.posts.Delete(id)
	return nil
}

// ListPosts returns a snapshot of every post in creation order.
func (s *ContentStore) ListPosts() []models.Blog {
	stored := s.posts.List()
	out := make([]models.Blog, 0, len(stored))
	for _, post := range stored {
		out = append(out, post.Clone())
	}
	return out
}

// ListPage returns at most limit posts starting at offset.
func (s *ContentStore) ListPage(offset, limit int) []models.Blog {
	stored := s.posts.List()
	if offset < 0 || limit <= 0 || offset >= len(stored) {
		return []models.Blog{}
	}
	end := len(stored)
	if limit < end-offset {
		end = offset + limit
	}
	out := make([]models.Blog, 0, end-offset)
	for _, post := range stored[offset:end] {
		out = append(out, post.Clone())
	}
	return out
}

// GetPost returns a copy of the post with the given id.
func (s *ContentStore) GetPost(id uint64) (models.Blog, bool) {
	post, ok := s.posts.GetByID(id)
	if !ok {
		return models.Blog{}, false
	}
	return post.Clone(), true
}

// Snapshot captures posts and counters for checkpointing.
func (s *ContentStore) Snapshot() models.Snapshot {
	nextPost, nextComment := s.ids.Counters()
	return models.Snapshot{
		Config:        s.config.Get(),
		Posts:         s.ListPosts(),
		NextPostID:    nextPost,
		NextCommentID: nextComment,
	}
}

// Restore replaces the whole state with snapshot.
func (s *ContentStore) Restore(snapshot models.Snapshot) {
	s.config.Replace(snapshot.Config)
	s.posts.Reset(snapshot.Posts)
	s.ids.Restore(snapshot.NextPostID, snapshot.NextCommentID)
}

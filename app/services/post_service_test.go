package services

import (
	"strings"
	"testing"

	"blogstore/app/models"
	"blogstore/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice models.Principal = "alice"
	bob   models.Principal = "bob"
)

func strPtr(s string) *string { return &s }

type fakeClock struct{ now uint64 }

func (c *fakeClock) Now() uint64 {
	c.now++
	return c.now
}

func newTestStore(t *testing.T, tags ...string) (*ContentStore, *ConfigService, *fakeClock) {
	t.Helper()
	cfg := models.DefaultConfig()
	cfg.Tags = append(cfg.Tags, tags...)
	configStore := repositories.NewConfigStore(cfg)
	clock := &fakeClock{}
	store := NewContentStore(
		repositories.NewMemoryPostRepository(),
		configStore,
		repositories.NewIdAllocator(),
		Options{EnforceCommentOwnership: true, Clock: clock.Now},
	)
	return store, NewConfigService(configStore), clock
}

func TestCreatePost(t *testing.T) {
	store, _, _ := newTestStore(t, "rust", "go", "zig", "c")

	t.Run("round trip", func(t *testing.T) {
		created, err := store.CreatePost(alice, "Hi", "World", []string{"rust"})
		require.NoError(t, err)
		assert.Equal(t, uint64(0), created.ID)

		got, ok := store.GetPost(created.ID)
		require.True(t, ok)
		assert.Equal(t, "Hi", got.Title)
		assert.Equal(t, "World", got.Content)
		assert.Equal(t, []string{"rust"}, got.Tags)
		assert.Equal(t, alice, got.Owner)
		assert.Empty(t, got.Comments)
	})

	tests := []struct {
		name    string
		title   string
		content string
		tags    []string
		wantErr error
	}{
		{"title at limit", strings.Repeat("x", 250), "c", nil, nil},
		{"title over limit", strings.Repeat("x", 251), "c", nil, models.ErrTitleTooLong},
		{"content at limit", "t", strings.Repeat("y", 2000), nil, nil},
		{"content over limit", "t", strings.Repeat("y", 2001), nil, models.ErrContentTooLong},
		{"tags at limit", "t", "c", []string{"rust", "go", "zig"}, nil},
		{"too many tags", "t", "c", []string{"rust", "go", "zig", "c"}, models.ErrTooManyTags},
		{"unknown tag", "t", "c", []string{"rust", "cobol"}, models.ErrInvalidTags},
		{"title checked before content", strings.Repeat("x", 251), strings.Repeat("y", 2001), nil, models.ErrTitleTooLong},
		{"content checked before tags", "t", strings.Repeat("y", 2001), []string{"cobol"}, models.ErrContentTooLong},
		{"count checked before whitelist", "t", "c", []string{"a", "b", "c", "d"}, models.ErrTooManyTags},
		{"multibyte title measured in bytes", strings.Repeat("é", 126), "c", nil, models.ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(store.ListPosts())
			_, err := store.CreatePost(alice, tt.title, tt.content, tt.tags)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, store.ListPosts(), before)
			} else {
				assert.NoError(t, err)
				assert.Len(t, store.ListPosts(), before+1)
			}
		})
	}
}

func TestPostIDsStrictlyIncrease(t *testing.T) {
	store, _, _ := newTestStore(t)

	var last int64 = -1
	for i := 0; i < 10; i++ {
		post, err := store.CreatePost(alice, "t", "c", nil)
		require.NoError(t, err)
		assert.Greater(t, int64(post.ID), last)
		last = int64(post.ID)

		if i%3 == 0 {
			require.NoError(t, store.DeletePost(alice, post.ID))
		}
	}

	_, err := store.CreatePost(alice, "t", "c", []string{"nope"})
	require.Error(t, err)
	post, err := store.CreatePost(alice, "t", "c", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), post.ID, "failed creations must not consume ids")
}

func TestEditPost(t *testing.T) {
	store, _, _ := newTestStore(t, "rust", "go")
	created, err := store.CreatePost(alice, "Title", "Content", []string{"rust"})
	require.NoError(t, err)

	t.Run("owner edits subset of fields", func(t *testing.T) {
		updated, err := store.EditPost(alice, created.ID, strPtr("New title"), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "Content", updated.Content)
		assert.Equal(t, []string{"rust"}, updated.Tags)
		assert.Equal(t, created.Owner, updated.Owner)
		assert.Equal(t, created.Date, updated.Date)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.EditPost(alice, 99, strPtr("x"), nil, nil)
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		before, _ := store.GetPost(created.ID)
		_, err := store.EditPost(bob, created.ID, strPtr("hijack"), strPtr("hijack"), &[]string{})
		assert.ErrorIs(t, err, models.ErrForbiddenEditPost)
		after, _ := store.GetPost(created.ID)
		assert.Equal(t, before, after)
	})

	t.Run("edit is atomic across fields", func(t *testing.T) {
		before, _ := store.GetPost(created.ID)
		_, err := store.EditPost(alice, created.ID, strPtr("valid"), strPtr("valid"), &[]string{"cobol"})
		assert.ErrorIs(t, err, models.ErrInvalidTags)
		after, _ := store.GetPost(created.ID)
		assert.Equal(t, before, after)
	})

	t.Run("tag validation on edit", func(t *testing.T) {
		_, err := store.EditPost(alice, created.ID, nil, nil, &[]string{"rust", "go", "rust", "go"})
		assert.ErrorIs(t, err, models.ErrTooManyTags)

		updated, err := store.EditPost(alice, created.ID, nil, nil, &[]string{"go"})
		require.NoError(t, err)
		assert.Equal(t, []string{"go"}, updated.Tags)
	})

	t.Run("owner and date survive many edits", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			updated, err := store.EditPost(alice, created.ID, nil, strPtr(strings.Repeat("z", i)), nil)
			require.NoError(t, err)
			assert.Equal(t, alice, updated.Owner)
			assert.Equal(t, created.Date, updated.Date)
		}
	})
}

func TestDeletePost(t *testing.T) {
	store, _, _ := newTestStore(t)
	created, err := store.CreatePost(alice, "Title", "Content", nil)
	require.NoError(t, err)
	_, err = store.AddComment(bob, created.ID, "hello")
	require.NoError(t, err)

	t.Run("non-owner", func(t *testing.T) {
		assert.ErrorIs(t, store.DeletePost(bob, created.ID), models.ErrForbiddenDeletePost)
		_, ok := store.GetPost(created.ID)
		assert.True(t, ok)
	})

	t.Run("owner", func(t *testing.T) {
		require.NoError(t, store.DeletePost(alice, created.ID))
		_, ok := store.GetPost(created.ID)
		assert.False(t, ok)
		_, err := store.ListComments(created.ID)
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, store.DeletePost(alice, created.ID), models.ErrPostNotFound)
	})
}

func TestListPage(t *testing.T) {
	store, _, _ := newTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := store.CreatePost(alice, "t", "c", nil)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []uint64
	}{
		{"first page", 0, 2, []uint64{0, 1}},
		{"middle", 2, 2, []uint64{2, 3}},
		{"truncated", 4, 50, []uint64{4}},
		{"offset past end", 5, 10, []uint64{}},
		{"zero limit", 0, 0, []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := store.ListPage(tt.offset, tt.limit)
			ids := []uint64{}
			for _, post := range page {
				ids = append(ids, post.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListPostsReturnsCopies(t *testing.T) {
	store, _, _ := newTestStore(t, "go")
	created, err := store.CreatePost(alice, "t", "c", []string{"go"})
	require.NoError(t, err)

	posts := store.ListPosts()
	posts[0].Title = "mutated"
	posts[0].Tags[0] = "mutated"

	got, _ := store.GetPost(created.ID)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, []string{"go"}, got.Tags)
}

func TestSnapshotRestore(t *testing.T) {
	store, _, _ := newTestStore(t, "go")
	post, err := store.CreatePost(alice, "t", "c", []string{"go"})
	require.NoError(t, err)
	_, err = store.AddComment(bob, post.ID, "hi")
	require.NoError(t, err)

	snapshot := store.Snapshot()
	assert.Equal(t, uint64(1), snapshot.NextPostID)
	assert.Equal(t, uint64(1), snapshot.NextCommentID)

	restored, _, _ := newTestStore(t)
	restored.Restore(snapshot)
	assert.Equal(t, store.ListPosts(), restored.ListPosts())

	next, err := restored.CreatePost(alice, "t", "c", []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next.ID)
}

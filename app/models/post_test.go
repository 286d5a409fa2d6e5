package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewBlog(t *testing.T) {
	tags := []string{"go"}
	blog := NewBlog(7, "alice", "Title", "Body", tags, 42)

	assert.Equal(t, uint64(7), blog.ID)
	assert.Equal(t, Principal("alice"), blog.Owner)
	assert.Equal(t, uint64(42), blog.Date)
	assert.NotNil(t, blog.Comments)
	assert.Empty(t, blog.Comments)

	tags[0] = "mutated"
	assert.Equal(t, []string{"go"}, blog.Tags)
}

func TestBlogApplyUpdate(t *testing.T) {
	tests := []struct {
		name    string
		title   *string
		content *string
		tags    *[]string
		want    Blog
	}{
		{
			name: "nothing present",
			want: Blog{Title: "t", Content: "c", Tags: []string{"a"}},
		},
		{
			name:  "title only",
			title: strPtr("new"),
			want:  Blog{Title: "new", Content: "c", Tags: []string{"a"}},
		},
		{
			name:    "content and tags",
			content: strPtr("body"),
			tags:    &[]string{"b", "c"},
			want:    Blog{Title: "t", Content: "body", Tags: []string{"b", "c"}},
		},
		{
			name: "empty tags clear the list",
			tags: &[]string{},
			want: Blog{Title: "t", Content: "c", Tags: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blog := Blog{ID: 1, Owner: "alice", Date: 5, Title: "t", Content: "c", Tags: []string{"a"}}
			blog.ApplyUpdate(tt.title, tt.content, tt.tags)

			assert.Equal(t, tt.want.Title, blog.Title)
			assert.Equal(t, tt.want.Content, blog.Content)
			assert.Equal(t, tt.want.Tags, blog.Tags)
			assert.Equal(t, Principal("alice"), blog.Owner)
			assert.Equal(t, uint64(5), blog.Date)
		})
	}
}

func TestBlogCommentManagement(t *testing.T) {
	blog := NewBlog(1, "alice", "Title", "Body", nil, 1)

	t.Run("add comment", func(t *testing.T) {
		blog.AddComment(NewComment(10, "bob", "first", 2))
		blog.AddComment(NewComment(11, "carol", "second", 3))
		require.Len(t, blog.Comments, 2)
		assert.Equal(t, uint64(10), blog.Comments[0].ID)
		assert.Equal(t, uint64(11), blog.Comments[1].ID)
	})

	t.Run("edit comment", func(t *testing.T) {
		updated, err := blog.EditComment(11, "edited", 9)
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
		assert.Equal(t, uint64(9), updated.Date)
		assert.Equal(t, "edited", blog.Comments[1].Content)
	})

	t.Run("edit missing comment", func(t *testing.T) {
		_, err := blog.EditComment(99, "x", 9)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("remove existing comment", func(t *testing.T) {
		require.NoError(t, blog.RemoveComment(10))
		require.Len(t, blog.Comments, 1)
		assert.Equal(t, uint64(11), blog.Comments[0].ID)
	})

	t.Run("remove non-existent comment", func(t *testing.T) {
		assert.ErrorIs(t, blog.RemoveComment(999), ErrCommentNotFound)
	})
}

func TestBlogClone(t *testing.T) {
	blog := NewBlog(1, "alice", "Title", "Body", []string{"go"}, 1)
	blog.AddComment(NewComment(1, "bob", "hi", 2))

	clone := blog.Clone()
	clone.Tags[0] = "rust"
	clone.Comments[0].Content = "changed"

	assert.Equal(t, "go", blog.Tags[0])
	assert.Equal(t, "hi", blog.Comments[0].Content)
}

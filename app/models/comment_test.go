package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewComment(t *testing.T) {
	comment := NewComment(3, "bob", "nice", 100)

	assert.Equal(t, uint64(3), comment.ID)
	assert.Equal(t, Principal("bob"), comment.Owner)
	assert.Equal(t, "nice", comment.Content)
	assert.Equal(t, uint64(100), comment.Date)
}

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{ Validate() error }
		wantErr bool
	}{
		{
			name:    "valid post",
			payload: &NewPostRequest{Title: strPtr("t"), Content: strPtr("c"), Tags: []string{}},
		},
		{
			name:    "empty strings are present",
			payload: &NewPostRequest{Title: strPtr(""), Content: strPtr(""), Tags: []string{}},
		},
		{
			name:    "missing title",
			payload: &NewPostRequest{Content: strPtr("c"), Tags: []string{}},
			wantErr: true,
		},
		{
			name:    "missing tags",
			payload: &NewPostRequest{Title: strPtr("t"), Content: strPtr("c")},
			wantErr: true,
		},
		{
			name:    "valid comment",
			payload: &CommentRequest{Content: strPtr("hi")},
		},
		{
			name:    "missing comment content",
			payload: &CommentRequest{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				assert.Equal(t, KindMalformed, KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

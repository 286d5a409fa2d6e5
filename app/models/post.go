package models

// NewBlog builds a post with an empty comment list.
func NewBlog(id uint64, owner Principal, title, content string, tags []string, date uint64) *Blog {
	return &Blog{
		ID:       id,
		Owner:    owner,
		Title:    title,
		Date:     date,
		Content:  content,
		Tags:     append([]string{}, tags...),
		Comments: []Comment{},
	}
}

// ApplyUpdate overwrites every field that is present. Owner and Date are
// never touched.
func (b *Blog) ApplyUpdate(title, content *string, tags *[]string) {
	if title != nil {
		b.Title = *title
	}
	if content != nil {
		b.Content = *content
	}
	if tags != nil {
		b.Tags = append([]string{}, (*tags)...)
	}
}

// AddComment appends a comment, keeping insertion order.
func (b *Blog) AddComment(comment Comment) {
	b.Comments = append(b.Comments, comment)
}

// FindComment returns a pointer into the post's comment list.
func (b *Blog) FindComment(commentID uint64) (*Comment, bool) {
	for i := range b.Comments {
		if b.Comments[i].ID == commentID {
			return &b.Comments[i], true
		}
	}
	return nil, false
}

// EditComment replaces the content of a comment and re-stamps its date.
func (b *Blog) EditComment(commentID uint64, content string, date uint64) (Comment, error) {
	c, ok := b.FindComment(commentID)
	if !ok {
		return Comment{}, ErrCommentNotFound
	}
	c.Content = content
	c.Date = date
	return *c, nil
}

// RemoveComment removes the comment with the given id.
func (b *Blog) RemoveComment(commentID uint64) error {
	for i, comment := range b.Comments {
		if comment.ID == commentID {
			b.Comments = append(b.Comments[:i], b.Comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

// Clone returns a deep copy that shares no slices with b.
func (b *Blog) Clone() Blog {
	out := *b
	out.Tags = append([]string{}, b.Tags...)
	out.Comments = append([]Comment{}, b.Comments...)
	return out
}

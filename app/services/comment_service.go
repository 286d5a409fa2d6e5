package services

import "blogstore/app/models"

// AddComment appends a comment by caller to a post. Comment content is not
// checked against the configured limits.
func (s *ContentStore) AddComment(caller models.Principal, postID uint64, content string) (models.Comment, error) {
	post, ok := s.posts.GetByID(postID)
	if !ok {
		return models.Comment{}, models.ErrPostNotFound
	}

	comment := models.NewComment(s.ids.NextCommentID(), caller, content, s.opts.Clock())
	post.AddComment(comment)
	return comment, nil
}

// EditComment replaces a comment's content and re-stamps its date.
func (s *ContentStore) EditComment(caller models.Principal, postID, commentID uint64, content string) (models.Comment, error) {
	post, err := s.commentOwnedBy(caller, postID, commentID, models.ErrForbiddenEditComment)
	if err != nil {
		return models.Comment{}, err
	}
	return post.EditComment(commentID, content, s.opts.Clock())
}

// RemoveComment deletes exactly one comment by id.
func (s *ContentStore) RemoveComment(caller models.Principal, postID, commentID uint64) error {
	post, err := s.commentOwnedBy(caller, postID, commentID, models.ErrForbiddenDeleteComment)
	if err != nil {
		return err
	}
	return post.RemoveComment(commentID)
}

// ListComments returns the comments of a post in display order.
func (s *ContentStore) ListComments(postID uint64) ([]models.Comment, error) {
	post, ok := s.posts.GetByID(postID)
	if !ok {
		return nil, models.ErrPostNotFound
	}
	return post.Clone().Comments, nil
}

// commentOwnedBy resolves the post holding commentID and checks that caller
// may change the comment.
func (s *ContentStore) commentOwnedBy(caller models.Principal, postID, commentID uint64, forbidden error) (*models.Blog, error) {
	post, ok := s.posts.GetByID(postID)
	if !ok {
		return nil, models.ErrPostNotFound
	}
	comment, ok := post.FindComment(commentID)
	if !ok {
		return nil, models.ErrCommentNotFound
	}
	if s.opts.EnforceCommentOwnership && !IsOwner(caller, comment.Owner) {
		return nil, forbidden
	}
	return post, nil
}

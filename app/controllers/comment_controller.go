package controllers

import (
	"net/http"

	"blogstore/app/models"
	"blogstore/app/services"
)

// CommentController turns routed comment requests into responses.
type CommentController struct {
	store *services.ContentStore
}

// NewCommentController creates a new CommentController
func NewCommentController(store *services.ContentStore) *CommentController {
	return &CommentController{store: store}
}

// Index handles listing all comments for a post
func (cc *CommentController) Index(postID uint64) models.HTTPResponse {
	comments, err := cc.store.ListComments(postID)
	if err != nil {
		return SendError(err)
	}
	return sendJSON(http.StatusOK, comments)
}

// Create handles creating a new comment
func (cc *CommentController) Create(caller models.Principal, postID uint64, body []byte) models.HTTPResponse {
	content, err := decodeComment(body)
	if err != nil {
		return SendError(err)
	}

	comment, err := cc.store.AddComment(caller, postID, content)
	if err != nil {
		return SendError(err)
	}
	return sendJSON(http.StatusCreated, comment)
}

// Edit handles editing an existing comment
func (cc *CommentController) Edit(caller models.Principal, postID, commentID uint64, body []byte) models.HTTPResponse {
	content, err := decodeComment(body)
	if err != nil {
		return SendError(err)
	}

	comment, err := cc.store.EditComment(caller, postID, commentID, content)
	if err != nil {
		return SendError(err)
	}
	return sendJSON(http.StatusOK, comment)
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(caller models.Principal, postID, commentID uint64) models.HTTPResponse {
	if err := cc.store.RemoveComment(caller, postID, commentID); err != nil {
		return SendError(err)
	}
	return NoContent()
}

func decodeComment(body []byte) (string, error) {
	var input models.CommentRequest
	if err := decodeBody(body, &input); err != nil {
		return "", err
	}
	if err := input.Validate(); err != nil {
		return "", err
	}
	return *input.Content, nil
}

package controllers

import (
	"net/http"

	"blogstore/app/models"
	"blogstore/app/services"
)

// PostController turns routed post requests into responses.
type PostController struct {
	store *services.ContentStore
}

// NewPostController creates a new PostController
func NewPostController(store *services.ContentStore) *PostController {
	return &PostController{store: store}
}

// Index handles listing a page of posts
func (pc *PostController) Index(offset, limit int) models.HTTPResponse {
	return sendJSON(http.StatusOK, pc.store.ListPage(offset, limit))
}

// Show handles displaying a single post
func (pc *PostController) Show(id uint64) models.HTTPResponse {
	post, ok := pc.store.GetPost(id)
	if !ok {
		return NotFound()
	}
	return sendJSON(http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(caller models.Principal, body []byte) models.HTTPResponse {
	var input models.NewPostRequest
	if err := decodeBody(body, &input); err != nil {
		return SendError(err)
	}
	if err := input.Validate(); err != nil {
		return SendError(err)
	}

	post, err := pc.store.CreatePost(caller, *input.Title, *input.Content, input.Tags)
	if err != nil {
		return SendError(err)
	}
	return sendJSON(http.StatusCreated, post)
}

// Edit handles editing an existing post
func (pc *PostController) Edit(caller models.Principal, id uint64, body []byte) models.HTTPResponse {
	var input models.UpdatePostRequest
	if err := decodeBody(body, &input); err != nil {
		return SendError(err)
	}

	post, err := pc.store.EditPost(caller, id, input.Title, input.Content, input.Tags)
	if err != nil {
		return SendError(err)
	}
	return sendJSON(http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(caller models.Principal, id uint64) models.HTTPResponse {
	if err := pc.store.DeletePost(caller, id); err != nil {
		return SendError(err)
	}
	return NoContent()
}

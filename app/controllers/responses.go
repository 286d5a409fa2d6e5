package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"blogstore/app/models"
)

// CORSHeaders returns the header set carried by every response.
func CORSHeaders() []models.HeaderField {
	return []models.HeaderField{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "Access-Control-Allow-Origin", Value: "*"},
		{Name: "Access-Control-Allow-Methods", Value: "GET,POST,PUT,DELETE,OPTIONS"},
		{Name: "Access-Control-Allow-Headers", Value: "Content-Type,Authorization"},
	}
}

// Helper methods for consistent response handling

func sendJSON(status int, data interface{}) models.HTTPResponse {
	body, err := json.Marshal(data)
	if err != nil {
		return sendError(http.StatusInternalServerError, models.KindUnknown, "Failed to encode response")
	}
	return models.HTTPResponse{StatusCode: uint16(status), Headers: CORSHeaders(), Body: body}
}

func sendError(status int, kind models.Kind, message string) models.HTTPResponse {
	body, _ := json.Marshal(map[string]string{"code": kind.String(), "error": message})
	return models.HTTPResponse{StatusCode: uint16(status), Headers: CORSHeaders(), Body: body}
}

// NoContent is an empty 204 response.
func NoContent() models.HTTPResponse {
	return models.HTTPResponse{StatusCode: http.StatusNoContent, Headers: CORSHeaders(), Body: []byte{}}
}

// Upgrade is the empty response asking the host to replay the request on
// the write entry.
func Upgrade() models.HTTPResponse {
	upgrade := true
	resp := NoContent()
	resp.Upgrade = &upgrade
	return resp
}

// NotFound is the 404 returned for paths no route matches.
func NotFound() models.HTTPResponse {
	return sendError(http.StatusNotFound, models.KindNotFound, "Not found")
}

// MethodNotAllowed is the 405 returned when a mutating request reaches the
// write entry without matching a write route.
func MethodNotAllowed() models.HTTPResponse {
	return sendError(http.StatusMethodNotAllowed, models.KindMalformed, "Method not allowed")
}

// SendError maps err onto the nearest status code.
func SendError(err error) models.HTTPResponse {
	kind := models.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case models.KindValidation, models.KindMalformed:
		status = http.StatusBadRequest
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindForbidden:
		status = http.StatusForbidden
	}
	return sendError(status, kind, err.Error())
}

// decodeBody parses a JSON body, rejecting invalid UTF-8 and syntax errors as
// malformed requests.
func decodeBody(body []byte, target interface{}) error {
	if !utf8.Valid(body) {
		return fmt.Errorf("%w: body is not valid UTF-8", models.ErrInvalidPayload)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	return nil
}

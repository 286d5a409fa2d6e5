package models

import "strings"

// HeaderField is a single (name, value) header pair.
type HeaderField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HTTPRequest is an HTTP-style call as delivered by the host to either entry
// point.
type HTTPRequest struct {
	Method  string        `json:"method"`
	URL     string        `json:"url"`
	Headers []HeaderField `json:"headers"`
	Body    []byte        `json:"body"`
}

// Header returns the first header value matching name, case-insensitively.
func (r HTTPRequest) Header(name string) string {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// HTTPResponse is returned by both entry points. Upgrade asks the host to
// resubmit the identical request on the write entry.
type HTTPResponse struct {
	StatusCode uint16        `json:"status_code"`
	Headers    []HeaderField `json:"headers"`
	Body       []byte        `json:"body"`
	Upgrade    *bool         `json:"upgrade,omitempty"`
}

// Upgraded reports whether the response carries the upgrade signal.
func (r HTTPResponse) Upgraded() bool {
	return r.Upgrade != nil && *r.Upgrade
}

// Header returns the first header value matching name, case-insensitively.
func (r HTTPResponse) Header(name string) string {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Package http provides HTTP server and handler implementations.
//
// This file implements a small builder for JSON and HTML responses, including
// the HX-Trigger header used by the htmx table partial.

package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// Message sent to clients whenever the dataset could not be fetched or loaded.
const MsgFetchFailed = "Failed to fetch salary data"

// ResponseBuilder provides a fluent API for building responses.
type ResponseBuilder struct {
	triggers   map[string]any
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewResponse creates a new response builder with default 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		triggers:   make(map[string]any),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named event with optional data to the HX-Trigger header.
func (b *ResponseBuilder) Trigger(name string, data any) *ResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerTablePage announces the page now shown by the records table.
func (b *ResponseBuilder) TriggerTablePage(page, totalPages int) *ResponseBuilder {
	return b.Trigger("table:page", map[string]int{"page": page, "total_pages": totalPages})
}

func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets a raw body without touching Content-Type.
func (b *ResponseBuilder) Body(content []byte) *ResponseBuilder {
	b.body = content
	return b
}

func (b *ResponseBuilder) BodyHTML(html string) *ResponseBuilder {
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = []byte(html)
	return b
}

// JSON marshals v as the body. A marshal failure turns the response into a 500.
func (b *ResponseBuilder) JSON(v any) *ResponseBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.statusCode = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	b.headers["Content-Type"] = "application/json"
	b.body = data
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if len(b.triggers) > 0 {
		if triggerJSON, err := json.Marshal(b.triggers); err == nil {
			w.Header().Set("HX-Trigger", string(triggerJSON))
		}
	}
	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// JSONError is the {"error": message} body used by every API endpoint.
func JSONError(statusCode int, message string) *ResponseBuilder {
	return NewResponse().Status(statusCode).JSON(map[string]string{"error": message})
}

// FetchFailedError is the response for an unavailable dataset.
func FetchFailedError() *ResponseBuilder {
	return JSONError(http.StatusInternalServerError, MsgFetchFailed)
}

// HTMLError is an escaped error fragment for htmx swaps.
func HTMLError(statusCode int, message string) *ResponseBuilder {
	return NewResponse().
		Status(statusCode).
		BodyHTML(`<div class="error">` + template.HTMLEscapeString(message) + `</div>`)
}

func MethodNotAllowedError(allowedMethods string) *ResponseBuilder {
	return JSONError(http.StatusMethodNotAllowed, "method not allowed").
		Header("Allow", allowedMethods)
}

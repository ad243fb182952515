// Package respond renders the JSON envelope every API route answers with.
package respond

import (
	"net/http"

	"github.com/go-chi/render"
)

// Envelope is the uniform response body. Success carries data or a human
// readable message; failures carry a message only, internal detail stays in
// the server log.
type Envelope struct {
	HTTPStatusCode int `json:"-"`

	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *Envelope) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func Data(w http.ResponseWriter, r *http.Request, data any) {
	render.Render(w, r, &Envelope{
		HTTPStatusCode: http.StatusOK,
		Success:        true,
		Data:           data,
	})
}

func Message(w http.ResponseWriter, r *http.Request, msg string) {
	render.Render(w, r, &Envelope{
		HTTPStatusCode: http.StatusOK,
		Success:        true,
		Message:        msg,
	})
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Render(w, r, &Envelope{
		HTTPStatusCode: status,
		Success:        false,
		Message:        msg,
	})
}

func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, r, http.StatusBadRequest, msg)
}

func NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, r, http.StatusNotFound, msg)
}

func Internal(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, r, http.StatusInternalServerError, msg)
}

func Unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, r, http.StatusUnauthorized, msg)
}

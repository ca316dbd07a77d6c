package core

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON creates a 200 JSON response wrapping the payload.
func JSON(data any) Response {
	return jsonResponse{
		status: http.StatusOK,
		body:   JSONResponse{Data: data},
	}
}

// JSONWithStatus creates a JSON response with an explicit status code.
func JSONWithStatus(status int, data any) Response {
	return jsonResponse{
		status: status,
		body:   JSONResponse{Data: data},
	}
}

// JSONError creates a JSON error response. ValidationError maps to 422 with
// per-field details; HTTPError carries its own status and key; anything else
// renders as an opaque 500 so internals never leak across the boundary.
func JSONError(err error) Response {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{Code: "internal_error"}

	switch e := err.(type) {
	case ValidationError:
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		if len(e) > 0 {
			detail.Details = make(map[string][]string, len(e))
			for field, messages := range e {
				detail.Details[field] = messages
			}
		}
	case HTTPError:
		status = e.Code
		detail.Code = e.Key
		detail.Message = http.StatusText(e.Code)
	}

	return jsonResponse{
		status: status,
		body:   JSONResponse{Error: detail},
	}
}

// NoContent creates an empty 204 response.
func NoContent() Response {
	return noContentResponse{}
}

type noContentResponse struct{}

func (noContentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Redirect creates a 303 redirect response.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	http.Redirect(w, req, r.url, r.code)
	return nil
}

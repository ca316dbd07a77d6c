package core

import "net/http"

// Response renders itself to an http.ResponseWriter. Handlers return a
// Response instead of writing directly, keeping status/encoding decisions in
// one place.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Render writes the response, falling back to a bare 500 if rendering itself
// fails.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	if err := resp.Render(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

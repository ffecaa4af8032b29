package server

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexPage []byte

// IndexHandler serves the embedded player page at the site root.
// The page is a thin client; all rating state lives behind /api.
type IndexHandler struct{}

// Routes returns the HTTP routes this handler serves. The "{$}" pattern
// matches the root path only, leaving unknown paths to 404.
func (h *IndexHandler) Routes() []string {
	return []string{"GET /{$}"}
}

// ServeHTTP writes the player page.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexPage)
}

// Package static serves the caller's front-end assets from a local directory.
package static

import (
	"net/http"
	"os"
	"strings"
)

// Handler serves files from Dir. Paths with a dot-prefixed segment are
// refused so files like .env next to the assets are never exposed.
type Handler struct {
	Dir        string
	fileServer http.Handler
}

// New returns a Handler for dir, or nil if dir is not an existing directory.
func New(dir string) *Handler {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	return &Handler{
		Dir:        dir,
		fileServer: http.FileServer(http.Dir(dir)),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if hasHiddenSegment(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	h.fileServer.ServeHTTP(w, r)
}

func hasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

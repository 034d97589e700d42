package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/desertthunder/mvx/internal/media"
	"github.com/desertthunder/mvx/internal/shared"
)

// MediaHandler serves stored media files under /media/.
type MediaHandler struct {
	store *media.Store
}

// NewMediaHandler creates a handler serving files from the given store.
func NewMediaHandler(store *media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// Routes returns the path patterns this handler serves.
func (h *MediaHandler) Routes() []string {
	return []string{"/media/"}
}

// ServeHTTP implements [http.Handler].
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, "/media/")

	f, err := h.store.Open(rel)
	switch {
	case errors.Is(err, shared.ErrMediaEscape):
		http.Error(w, "Invalid media path", http.StatusBadRequest)
		return
	case errors.Is(err, shared.ErrMediaNotFound):
		http.Error(w, "Media file not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Failed to open media file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "Failed to stat media file", http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

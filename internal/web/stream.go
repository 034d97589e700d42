package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/tasks"
)

// streamRegistry tracks the progress channel of each in-flight
// generation so the SSE endpoint can relay updates to the browser.
type streamRegistry struct {
	mu      sync.Mutex
	streams map[string]chan tasks.ProgressUpdate
}

func newStreamRegistry() *streamRegistry {
	return &streamRegistry{streams: make(map[string]chan tasks.ProgressUpdate)}
}

// start registers a progress channel for the video, failing when a
// generation is already in flight.
func (r *streamRegistry) start(videoID string) (chan tasks.ProgressUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.streams[videoID]; ok {
		return nil, shared.ErrGenerationBusy
	}

	ch := make(chan tasks.ProgressUpdate, 16)
	r.streams[videoID] = ch
	return ch, nil
}

// finish closes and removes the video's progress channel.
func (r *streamRegistry) finish(videoID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.streams[videoID]; ok {
		close(ch)
		delete(r.streams, videoID)
	}
}

// get returns the video's progress channel if a generation is in flight.
func (r *streamRegistry) get(videoID string) (chan tasks.ProgressUpdate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.streams[videoID]
	return ch, ok
}

// active reports whether a generation is in flight for the video.
func (r *streamRegistry) active(videoID string) bool {
	_, ok := r.get(videoID)
	return ok
}

// streamProgress relays generation progress updates as Server-Sent
// Events. When no generation is in flight it emits a single snapshot
// of the video's stored state and finishes.
func (h *WebHandler) streamProgress(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	video, err := h.videos.Get(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Video not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, running := h.streams.get(video.ID())
	if !running {
		progress := 0
		if p := video.GenerationProgress(); p != nil {
			progress = *p
		}
		writeSSE(w, map[string]any{
			"phase":    "snapshot",
			"message":  fmt.Sprintf("Status: %s", video.Status()),
			"status":   video.Status(),
			"progress": progress,
		})
		writeSSE(w, map[string]any{"phase": "done"})
		flusher.Flush()
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case update, ok := <-ch:
			if !ok {
				writeSSE(w, map[string]any{"phase": "done"})
				flusher.Flush()
				return
			}
			writeSSE(w, map[string]any{
				"phase":   update.Phase.String(),
				"step":    update.Step,
				"total":   update.Total,
				"message": update.Message,
			})
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event map[string]any) {
	body, err := shared.MarshalJSON(event, false)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", body)
}

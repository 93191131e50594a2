package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// eventStream writes Server-Sent Events with increasing IDs. Batch workers report progress
// concurrently, so writes are serialized.
type eventStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	nextID  int
}

// newEventStream sets the streaming headers and commits a 200 response
func newEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &eventStream{w: w, flusher: flusher}, nil
}

// send writes one named event carrying payload as JSON
func (e *eventStream) send(name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	if _, err := fmt.Fprintf(e.w, "id: %d\nevent: %s\ndata: %s\n\n", e.nextID, name, data); err != nil {
		return err
	}
	e.flusher.Flush()
	return nil
}

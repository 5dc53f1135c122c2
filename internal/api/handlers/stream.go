package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/Project-Sylos/Corpus/sdk"
	"github.com/go-chi/chi/v5"
)

// StreamHandler serves generated content streams
type StreamHandler struct {
	BaseHandler
	corpus *sdk.Corpus
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(corpus *sdk.Corpus) *StreamHandler {
	return &StreamHandler{corpus: corpus}
}

// GetStream streams the content of /api/v1/streams/{size}/{seed} to the
// client. The body is the full payload-plus-trailer byte sequence for the
// given parameters; downloading the same URL twice yields identical bytes.
func (h *StreamHandler) GetStream(w http.ResponseWriter, req *http.Request) {
	size, err := strconv.ParseInt(chi.URLParam(req, "size"), 10, 64)
	if err != nil || size < 0 {
		h.sendError(w, http.StatusBadRequest, "size must be a non-negative integer")
		return
	}

	seed, err := strconv.ParseInt(chi.URLParam(req, "seed"), 10, 64)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "seed must be an integer")
		return
	}

	stream := h.corpus.NewStream(size, seed)

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
	if _, err := io.Copy(w, stream); err != nil {
		// Response is already underway; nothing to send to the client.
		log.Printf("Error streaming content (size=%d seed=%d): %v", size, seed, err)
		return
	}

	if _, err := h.corpus.RecordStreamPass(stream); err != nil {
		log.Printf("Error recording stream pass (size=%d seed=%d): %v", size, seed, err)
	}
}

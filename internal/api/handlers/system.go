package handlers

import (
	"net/http"
	"strconv"

	"github.com/Project-Sylos/Corpus/sdk"
	"github.com/go-chi/chi/v5"
)

// SystemHandler handles telemetry and configuration endpoints
type SystemHandler struct {
	BaseHandler
	corpus *sdk.Corpus
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(corpus *sdk.Corpus) *SystemHandler {
	return &SystemHandler{corpus: corpus}
}

// GetConfig returns the current configuration
func (h *SystemHandler) GetConfig(w http.ResponseWriter, req *http.Request) {
	h.sendSuccess(w, "Configuration retrieved", h.corpus.GetConfig())
}

// GetStats returns chunk latency statistics across all recorded passes
func (h *SystemHandler) GetStats(w http.ResponseWriter, req *http.Request) {
	stats, err := h.corpus.Stats()
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to compute stats: "+err.Error())
		return
	}
	h.sendSuccess(w, "Stats computed", stats)
}

// ListPasses returns the most recent recorded passes
func (h *SystemHandler) ListPasses(w http.ResponseWriter, req *http.Request) {
	limit := 50
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.sendError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	passes, err := h.corpus.ListPasses(limit)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to list passes: "+err.Error())
		return
	}
	h.sendSuccess(w, "Passes retrieved", passes)
}

// GetPass returns one recorded pass together with its chunk records and
// latency summary
func (h *SystemHandler) GetPass(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	pass, chunks, err := h.corpus.GetPass(id)
	if err != nil {
		h.sendError(w, http.StatusNotFound, "Pass not found: "+err.Error())
		return
	}

	stats, err := h.corpus.PassStats(id)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to compute pass stats: "+err.Error())
		return
	}

	h.sendSuccess(w, "Pass retrieved", map[string]any{
		"pass":   pass,
		"chunks": chunks,
		"stats":  stats,
	})
}

// Reset clears all recorded telemetry
func (h *SystemHandler) Reset(w http.ResponseWriter, req *http.Request) {
	if err := h.corpus.Reset(); err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to reset telemetry: "+err.Error())
		return
	}
	h.sendSuccess(w, "Telemetry reset", nil)
}

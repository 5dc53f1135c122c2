package handlers

import (
	"net/http"

	"github.com/Project-Sylos/Corpus/sdk"
)

// VerifyHandler checks uploaded byte streams for integrity
type VerifyHandler struct {
	BaseHandler
	corpus *sdk.Corpus
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(corpus *sdk.Corpus) *VerifyHandler {
	return &VerifyHandler{corpus: corpus}
}

// Verify consumes the request body through a verifier and reports whether
// the content ends with the digest of everything before it
func (h *VerifyHandler) Verify(w http.ResponseWriter, req *http.Request) {
	result, err := h.corpus.VerifyReader(req.Body)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to verify stream: "+err.Error())
		return
	}

	message := "Stream verified"
	if !result.Valid {
		message = "Stream is corrupt"
	}
	h.sendSuccess(w, message, result)
}

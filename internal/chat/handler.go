package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prismatek/prismatek-ai-backend/internal/observability/metrics"
	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

// User-facing reply when the completion provider fails. Upstream detail is
// logged server-side only.
const apologyMessage = "Sorry, I'm having trouble responding right now. Please try again in a moment."

// Handler handles HTTP requests for chat.
type Handler struct {
	relay   *Relay
	metrics *metrics.ChatMetrics
	logger  *logging.Logger
}

// NewHandler creates a new chat handler. m may be nil.
func NewHandler(relay *Relay, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{relay: relay, metrics: m, logger: logger}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type chatError struct {
	Error string `json:"error"`
}

// HandleChat handles POST /api/chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveRequest("rejected")
		writeJSON(w, http.StatusBadRequest, chatError{Error: ErrMessageRequired.Error()})
		return
	}

	reply, err := h.relay.Reply(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, ErrMessageRequired) {
			h.metrics.ObserveRequest("rejected")
			writeJSON(w, http.StatusBadRequest, chatError{Error: err.Error()})
			return
		}
		h.logger.Error("chat completion failed", "error", err)
		h.metrics.ObserveRequest("upstream_error")
		writeJSON(w, http.StatusInternalServerError, chatError{Error: apologyMessage})
		return
	}

	h.metrics.ObserveRequest("ok")
	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

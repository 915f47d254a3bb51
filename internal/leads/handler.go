package leads

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/prismatek/prismatek-ai-backend/internal/observability/metrics"
	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

// Notifier is told about each stored lead. Implementations must not block
// the request path; delivery failures are their own concern.
type Notifier interface {
	LeadCaptured(lead Lead)
}

// Handler handles HTTP requests for leads
type Handler struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewHandler creates a new leads handler. notifier and m may be nil.
func NewHandler(repo Repository, notifier Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

type submitLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"leadId,omitempty"`
}

// SubmitLead handles POST /api/submit-lead requests.
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, submitLeadResponse{Success: false, Message: "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, submitLeadResponse{Success: false, Message: err.Error()})
		return
	}

	lead := req.NewLead(time.Now(), clientIP(r))

	if err := h.repo.Append(r.Context(), lead); err != nil {
		h.logger.Error("failed to persist lead", "error", err)
		h.metrics.ObserveSubmission("error")
		writeJSON(w, http.StatusInternalServerError, submitLeadResponse{Success: false, Message: "failed to save lead"})
		return
	}

	// Phone number and message body are deliberately kept out of the logs.
	h.logger.Info("lead captured",
		"id", lead.ID,
		"name", lead.Name,
		"email", lead.Email,
		"company", lead.Company,
		"requirement", lead.Requirement,
		"submitted_at", lead.SubmittedAt.Format(time.RFC3339),
	)
	h.metrics.ObserveSubmission("accepted")

	if h.notifier != nil {
		h.notifier.LeadCaptured(*lead)
	}

	writeJSON(w, http.StatusOK, submitLeadResponse{
		Success: true,
		Message: "Lead submitted successfully",
		LeadID:  lead.ID,
	})
}

// ListLeads handles GET /api/leads requests. Read errors are swallowed and
// reported as an empty collection with status 200.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		all = nil
	}
	if all == nil {
		all = []Lead{}
	}
	writeJSON(w, http.StatusOK, all)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// clientIP returns the request's observed source address. chi's RealIP
// middleware has already folded X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if addr == "" {
		return "unknown"
	}
	return addr
}

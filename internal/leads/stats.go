package leads

import (
	"net/http"
	"strings"
	"time"

	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

// Stats summarizes the captured leads.
type Stats struct {
	TotalLeads      int            `json:"totalLeads"`
	TodayLeads      int            `json:"todayLeads"`
	ServiceRequests map[string]int `json:"serviceRequests"`
}

// Leads with no requirement recorded are bucketed here.
const fallbackServiceBucket = "General Inquiry"

// ComputeStats aggregates lead counts as of now. Today-bucketing compares
// calendar dates in the server's local time zone.
func ComputeStats(all []Lead, now time.Time) Stats {
	stats := Stats{ServiceRequests: map[string]int{}}
	y, m, d := now.Date()
	for _, lead := range all {
		stats.TotalLeads++
		if ly, lm, ld := lead.SubmittedAt.Local().Date(); ly == y && lm == m && ld == d {
			stats.TodayLeads++
		}
		requirement := strings.TrimSpace(lead.Requirement)
		if requirement == "" {
			requirement = fallbackServiceBucket
		}
		stats.ServiceRequests[requirement]++
	}
	return stats
}

// StatsHandler provides the lead statistics endpoint.
type StatsHandler struct {
	repo   Repository
	logger *logging.Logger
}

// NewStatsHandler creates a new stats HTTP handler.
func NewStatsHandler(repo Repository, logger *logging.Logger) *StatsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsHandler{repo: repo, logger: logger}
}

// GetStats handles GET /api/stats requests. Read failures degrade to the
// zero-valued stats rather than an error status.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to load leads for stats", "error", err)
		all = nil
	}
	writeJSON(w, http.StatusOK, ComputeStats(all, time.Now()))
}

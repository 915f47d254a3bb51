package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters for the lead intake flow.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prismatek",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total lead form submissions by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal)
	return m
}

// ObserveSubmission records one submission outcome (accepted, rejected, error).
func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ChatMetrics exposes counters/histograms for the chat relay.
type ChatMetrics struct {
	requestsTotal     *prometheus.CounterVec
	completionLatency prometheus.Histogram
	searchFailures    prometheus.Counter
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prismatek",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total chat requests by outcome",
		}, []string{"outcome"}),
		completionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "prismatek",
			Subsystem: "chat",
			Name:      "completion_latency_seconds",
			Help:      "Latency of completion provider calls",
			Buckets:   prometheus.DefBuckets,
		}),
		searchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prismatek",
			Subsystem: "chat",
			Name:      "search_failures_total",
			Help:      "Search provider lookups that failed and were skipped",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.completionLatency, m.searchFailures)
	return m
}

// ObserveRequest records one chat request outcome (ok, rejected, upstream_error).
func (m *ChatMetrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

func (m *ChatMetrics) ObserveCompletionLatency(seconds float64) {
	if m == nil {
		return
	}
	m.completionLatency.Observe(seconds)
}

func (m *ChatMetrics) ObserveSearchFailure() {
	if m == nil {
		return
	}
	m.searchFailures.Inc()
}

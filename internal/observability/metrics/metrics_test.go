package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveSubmission("accepted")
	m.ObserveSubmission("rejected")
}

func TestChatMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)
	m.ObserveRequest("ok")
	m.ObserveCompletionLatency(0.25)
	m.ObserveSearchFailure()
}

func TestMetricsNilSafe(t *testing.T) {
	var lm *LeadMetrics
	lm.ObserveSubmission("accepted")

	var cm *ChatMetrics
	cm.ObserveRequest("ok")
	cm.ObserveCompletionLatency(0.1)
	cm.ObserveSearchFailure()
}

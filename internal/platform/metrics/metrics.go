package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestDuration tracks request latency per route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_roster_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"method", "route", "status"},
	)

	// RosterTransitions counts committed application records by the status
	// they moved into.
	RosterTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_roster_transitions_total",
			Help: "Application records written, by resulting status",
		},
		[]string{"status"},
	)

	CampaignStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_roster_campaign_status_changes_total",
			Help: "Campaign status transitions, by target status",
		},
		[]string{"status"},
	)

	OutboxPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_roster_outbox_events_total",
			Help: "Outbox events handled by the relay, by outcome",
		},
		[]string{"outcome"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_roster_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func RecordRosterTransition(status string) {
	RosterTransitions.WithLabelValues(status).Inc()
}

func RecordCampaignStatusChange(status string) {
	CampaignStatusChanges.WithLabelValues(status).Inc()
}

func RecordOutbox(outcome string) {
	OutboxPublished.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

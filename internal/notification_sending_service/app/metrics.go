package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationSendAttemptsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notification_sending",
			Name:      "send_attempts_total",
			Help:      "Total number of outbound notification send attempts.",
		},
		[]string{"provider", "status"}, // status: "success", "invalid_recipient", "provider_rejected", "transport_failure", "invalid_payload"
	)

	providerRequestDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notification_sending",
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of outbound provider send calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

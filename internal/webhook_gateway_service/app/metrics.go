package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookEventsDispatchedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "webhook_gateway",
			Name:      "events_dispatched_total",
			Help:      "Total number of webhook events dispatched, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	webhookDispatchFailuresCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "webhook_gateway",
			Name:      "dispatch_failures_total",
			Help:      "Total number of per-event dispatch failures (isolated, never block the callback).",
		},
		[]string{"kind"},
	)
)

package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	natsStatusEventsReceivedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "status_tracker",
			Name:      "nats_events_received_total",
			Help:      "Total number of NATS status events received.",
		},
	)

	statusUpdatesProcessedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "status_tracker",
			Name:      "updates_processed_total",
			Help:      "Total number of delivery status updates processed.",
		},
		[]string{"status", "outcome"}, // outcome: "applied", "ignored_out_of_order", "error"
	)
)

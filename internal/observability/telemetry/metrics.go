package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Webhook traffic
	BridgeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_requests_total",
		Help: "Webhook requests by platform request type and outcome",
	}, []string{"type", "status"})

	TurnLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_turn_latency_seconds",
		Help:    "End-to-end latency of one conversation turn",
		Buckets: prometheus.DefBuckets,
	})

	// Slot resolution pipeline
	SlotResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_slot_resolutions_total",
		Help: "Slot resolutions by variant kind and outcome",
	}, []string{"kind", "outcome"})

	ExampleLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_example_lookups_total",
		Help: "Canonical example lookups by source (cache, database, miss)",
	}, []string{"source"})

	// Engine transport
	EngineErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_engine_errors_total",
		Help: "Conversation engine turns that failed",
	})
)

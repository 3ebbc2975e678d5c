//go:build !tinygo && !baremetal

// Package telemetry holds the Prometheus collectors shared by every node in
// the process. Series are labelled by node address.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	Counter = prometheus.Counter
	Gauge   = prometheus.Gauge
)

var (
	Registry = prometheus.NewRegistry()

	EdgesDrained = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulsecast",
			Name:      "edges_drained_total",
			Help:      "Button edges moved from the edge counter into the window.",
		},
		[]string{"node"},
	)

	RollingSum = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pulsecast",
			Name:      "rolling_sum",
			Help:      "Edges counted across the current window.",
		},
		[]string{"node"},
	)

	RemoteSum = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pulsecast",
			Name:      "remote_rolling_sum",
			Help:      "Last rolling sum heard from a peer.",
		},
		[]string{"node", "peer"},
	)

	Sends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulsecast",
			Name:      "sends_total",
			Help:      "Frames handed to the radio, by kind (broadcast, ack) and status.",
		},
		[]string{"node", "kind", "status"},
	)

	SkippedTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulsecast",
			Name:      "skipped_ticks_total",
			Help:      "Tick boundaries dropped because the loop overran them.",
		},
		[]string{"node"},
	)

	PeerRegistrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulsecast",
			Name:      "peer_registrations_total",
			Help:      "Peer table outcomes for newly seen sources.",
		},
		[]string{"node", "result"},
	)

	InboundFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulsecast",
			Name:      "inbound_frames_total",
			Help:      "Frames taken from the radio, by classification.",
		},
		[]string{"node", "kind"},
	)
)

func init() {
	Registry.MustRegister(EdgesDrained, RollingSum, RemoteSum, Sends, SkippedTicks, PeerRegistrations, InboundFrames)
}

// MetricsHandler exposes /metrics. Mount it with mux.Handle("/metrics", telemetry.MetricsHandler()).
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

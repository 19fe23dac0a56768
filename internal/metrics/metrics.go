package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyrelay_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keyrelay_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	DevicesRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_devices_registered_total",
			Help: "Total devices registered",
		},
	)

	DevicesDeregistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_devices_deregistered_total",
			Help: "Total devices deregistered",
		},
	)

	PreKeysUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_prekeys_uploaded_total",
			Help: "Total one-time prekeys uploaded",
		},
	)

	PreKeysConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_prekeys_consumed_total",
			Help: "Total one-time prekeys consumed into bundles",
		},
	)

	PreKeyExhaustions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_prekey_exhaustions_total",
			Help: "Bundle requests rejected because a target device had no prekeys left",
		},
	)

	BundlesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_bundles_served_total",
			Help: "Total prekey bundles served",
		},
	)

	MessagesRelayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_messages_relayed_total",
			Help: "Total messages accepted for relay",
		},
	)

	MessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyrelay_messages_deleted_total",
			Help: "Total messages deleted by their recipient",
		},
	)
)

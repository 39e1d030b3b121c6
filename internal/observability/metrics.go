package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutationsTotal counts record store mutations by operation and kind.
	StoreMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastebook_store_mutations_total",
		Help: "Total number of record store mutations by operation and record kind",
	}, []string{"operation", "kind"})

	// StoreNotificationsTotal counts snapshot broadcasts to observers.
	StoreNotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tastebook_store_notifications_total",
		Help: "Total number of snapshot notifications delivered to observers",
	})

	// SlotWriteLatency records durable slot write latency by slot name.
	SlotWriteLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tastebook_slot_write_latency_seconds",
		Help:    "Durable storage slot write latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"slot"})

	// RenderDuration records page render latency by page.
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tastebook_render_duration_seconds",
		Help:    "Page render duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"page"})

	// ScreenConnections is the gauge of connected screen websockets.
	ScreenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tastebook_screen_connections",
		Help: "Number of connected screen websockets",
	})

	// ImageProcessingDuration records image decode/resize/encode latency.
	ImageProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tastebook_image_processing_duration_seconds",
		Help:    "Image decode, resize, and encode duration in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Extractions     *prometheus.CounterVec
	DecodeFailures  *prometheus.CounterVec
	ExtractSeconds  prometheus.Histogram
	GeocodeRequests *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Extractions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "photomap_extractions_total",
			Help: "Total number of photos processed, by outcome.",
		}, []string{"outcome"}),
		DecodeFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "photomap_decode_failures_total",
			Help: "Total number of photos whose metadata could not be decoded, by cause.",
		}, []string{"cause"}),
		ExtractSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "photomap_extraction_duration_seconds",
			Help:    "Duration of a single photo extraction.",
			Buckets: prometheus.DefBuckets,
		}),
		GeocodeRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "photomap_geocode_requests_total",
			Help: "Total number of reverse geocoding requests, by provider and status.",
		}, []string{"provider", "status"}),
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AcquireMetrics holds the Prometheus metrics for the tile acquisition
// pipeline. Metrics are in-process only; the core exposes no scrape
// endpoint of its own.
type AcquireMetrics struct {
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	FetchFailures *prometheus.CounterVec
	FramesLoaded  prometheus.Counter
}

// NewAcquireMetrics initializes and registers the acquisition metrics
// against the given registerer
func NewAcquireMetrics(reg prometheus.Registerer) *AcquireMetrics {
	factory := promauto.With(reg)
	return &AcquireMetrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nuage",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of tiles served from the disk cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nuage",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of tiles that required a network fetch.",
		}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nuage",
			Subsystem: "acquire",
			Name:      "failures_total",
			Help:      "Total number of skipped slots by failure reason.",
		}, []string{"reason"}), // reason: network, decode, storage
		FramesLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nuage",
			Subsystem: "acquire",
			Name:      "frames_total",
			Help:      "Total number of frames published to the image buffer.",
		}),
	}
}

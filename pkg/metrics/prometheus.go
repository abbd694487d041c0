package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	DocumentsIngested prometheus.Counter
	FlightsExtracted  prometheus.Counter
	TripsImported     prometheus.Counter
	ParseTime         prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		DocumentsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_ingested_total",
			Help:      "The total number of ingested documents",
		}),
		FlightsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_extracted_total",
			Help:      "The total number of candidate flights extracted from text",
		}),
		TripsImported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_imported_total",
			Help:      "The total number of travel records created from ingestion",
		}),
		ParseTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_time_seconds",
			Help:      "Time taken to parse ingested content",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

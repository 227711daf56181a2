// Package observability exposes Prometheus metrics for the ingestion path.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ingestRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devtrack",
		Subsystem: "ingest",
		Name:      "records_total",
		Help:      "Activity records appended to the store, by kind.",
	}, []string{"kind"})
	ingestFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devtrack",
		Subsystem: "ingest",
		Name:      "failures_total",
		Help:      "Ingestion calls that failed at the storage layer, by kind.",
	}, []string{"kind"})
	lastIngestGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "devtrack",
		Subsystem: "ingest",
		Name:      "last_record_timestamp_seconds",
		Help:      "Unix timestamp of the most recent record appended.",
	})
)

func init() {
	prometheus.MustRegister(ingestRecords, ingestFailures, lastIngestGauge)
}

// RecordIngest counts a successfully appended record of the given kind.
func RecordIngest(kind string) {
	ingestRecords.WithLabelValues(kind).Inc()
	lastIngestGauge.Set(float64(time.Now().Unix()))
}

// RecordIngestFailure counts a storage-layer ingestion failure.
func RecordIngestFailure(kind string) {
	ingestFailures.WithLabelValues(kind).Inc()
}

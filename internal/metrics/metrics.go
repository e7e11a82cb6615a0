package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	RecordsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimalist_records_created_total",
			Help: "Total number of saved records by kind.",
		},
		[]string{"kind"},
	)

	RecordsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimalist_records_deleted_total",
			Help: "Total number of records removed by their owner, by kind.",
		},
		[]string{"kind"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimalist_generations_total",
			Help: "Total number of generation calls by kind and status.",
		},
		[]string{"kind", "status"},
	)
)

func RecordCreated(kind string) {
	RecordsCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordDeleted(kind string) {
	RecordsDeletedTotal.WithLabelValues(kind).Inc()
}

func Generation(kind string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	GenerationsTotal.WithLabelValues(kind, status).Inc()
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImportRuns tracks import runs by outcome ("completed", "rejected")
	ImportRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tallybridge_import_runs_total",
			Help: "Total number of import runs by outcome",
		},
		[]string{"outcome"},
	)

	// RecordsImported tracks created records by kind
	RecordsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tallybridge_records_imported_total",
			Help: "Total number of records created by the importer",
		},
		[]string{"kind"},
	)

	// RecordsSkipped tracks natural-key duplicates left untouched
	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tallybridge_records_skipped_total",
			Help: "Total number of duplicate records skipped by the importer",
		},
		[]string{"kind"},
	)

	// RecordErrors tracks per-record failures by kind
	RecordErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tallybridge_record_errors_total",
			Help: "Total number of per-record import errors",
		},
		[]string{"kind"},
	)
)

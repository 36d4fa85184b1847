// Package metrics declares the Prometheus collectors for the text pipelines.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
)

const namespace = "tally"

// Translation lookup outcomes.
const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupError = "error"
)

var (
	ReceiptLines = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "receipt",
		Name:      "lines_total",
		Help:      "Receipt lines handed to the tokenizer.",
	})

	ReceiptItems = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "receipt",
		Name:      "items_total",
		Help:      "Receipt items emitted by the tokenizer.",
	})

	TranslationLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "translation",
		Name:      "lookups_total",
		Help:      "Translation memory lookups by outcome.",
	}, []string{"outcome"})

	Categorized = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "categorizer",
		Name:      "transactions_total",
		Help:      "Categorized transactions by outcome.",
	}, []string{"outcome"})

	SharedApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "shared_total",
		Help:      "Shared expenses applied to reports, merged or inserted.",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCategorized adds one categorize call's outcome counts.
func ObserveCategorized(s categorize.Stats) {
	Categorized.WithLabelValues("matched").Add(float64(s.Matched))
	Categorized.WithLabelValues("misc").Add(float64(s.Misc))
	Categorized.WithLabelValues("dropped").Add(float64(s.Dropped))
	Categorized.WithLabelValues("skipped").Add(float64(s.Skipped))
	Categorized.WithLabelValues("special").Add(float64(s.Special))
}

// ObserveReconciled adds one reconcile call's counts.
func ObserveReconciled(s reconcile.Stats) {
	SharedApplied.WithLabelValues("merged").Add(float64(s.Merged))
	SharedApplied.WithLabelValues("inserted").Add(float64(s.Inserted))
}

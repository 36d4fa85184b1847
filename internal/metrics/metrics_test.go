package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/metrics"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
)

func TestObserveCategorized(t *testing.T) {
	matched := testutil.ToFloat64(metrics.Categorized.WithLabelValues("matched"))
	misc := testutil.ToFloat64(metrics.Categorized.WithLabelValues("misc"))

	metrics.ObserveCategorized(categorize.Stats{Matched: 3, Misc: 2})

	assert.InDelta(t, matched+3, testutil.ToFloat64(metrics.Categorized.WithLabelValues("matched")), 0)
	assert.InDelta(t, misc+2, testutil.ToFloat64(metrics.Categorized.WithLabelValues("misc")), 0)
}

func TestObserveReconciled(t *testing.T) {
	inserted := testutil.ToFloat64(metrics.SharedApplied.WithLabelValues("inserted"))

	metrics.ObserveReconciled(reconcile.Stats{Merged: 1, Inserted: 4})

	assert.InDelta(t, inserted+4, testutil.ToFloat64(metrics.SharedApplied.WithLabelValues("inserted")), 0)
}

func TestHandler(t *testing.T) {
	metrics.ReceiptLines.Add(1)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tally_receipt_lines_total")
}

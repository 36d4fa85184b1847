package transaction

import (
	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/metrics"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

// build categorizes txns and, when there are shared expenses, reconciles them
// into the result.
func build(txns []categorize.Transaction, shared []reconcile.SharedTransaction, tax taxonomy.Taxonomy, autoAssign bool) report.Report {
	res := categorize.Analyze(txns, tax, autoAssign)
	metrics.ObserveCategorized(res.Stats)

	if len(shared) == 0 {
		return res.Report
	}

	rep, stats := reconcile.Apply(res.Report, shared)
	metrics.ObserveReconciled(stats)

	return rep
}

// Package supplier holds the registry of named, supplier-keyed business
// exceptions applied after line reconciliation. Each rule is data: a key, a
// match predicate on the normalized supplier identity, and a pure transform.
// Rules are not mutually exclusive and always run in registry order, since
// later stages depend on earlier numeric corrections.
package supplier

import (
	"github.com/shopspring/decimal"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
	"github.com/raeesul-erabiz/invoice-extractor/internal/reconcile"
)

const stageSupplier = "supplier_rules"

// Env carries the per-run collaborators an adjustment may consult.
type Env struct {
	Run          *reconcile.Run
	Supplement   domain.Supplement
	StandardRate decimal.Decimal
}

// Adjustment is one named supplier exception.
type Adjustment struct {
	Key     string
	Name    string
	Matches func(inv *domain.Invoice, env *Env) bool
	Apply   func(inv domain.Invoice, env *Env) domain.Invoice
}

// Registry returns the adjustments in their fixed evaluation order.
func Registry() []Adjustment {
	return []Adjustment{
		anchorPackagingGST(),
		aliasCanonicalization(),
		pnmPublishedTotals(),
		allpressNameEnrichment(),
		cocaColaSubtotalInference(),
		foodAndDairyTotalInference(),
		pfdShippingTax(),
	}
}

// Dispatch evaluates every registered adjustment against the record and
// applies those that match, in order.
func Dispatch(inv domain.Invoice, env *Env) domain.Invoice {
	for _, adj := range Registry() {
		if !adj.Matches(&inv, env) {
			continue
		}
		env.Run.Infof(stageSupplier, "applying %s", adj.Key)
		inv = adj.Apply(inv, env)
	}
	return inv
}

// cloneItems copies the line-item slice so an adjustment can rewrite lines
// without aliasing the caller's record.
func cloneItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}

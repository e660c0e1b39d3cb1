package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
)

const stageTotals = "totals"

// Aggregator rolls reconciled line items plus header adjustment charges into
// invoice-level totals, and reports signed variances against the published
// totals. Adjustment charges (shipping, picking, discount) are taxed at the
// standard rate. Published values are diagnostic targets here, never
// overwritten.
type Aggregator struct {
	StandardRate decimal.Decimal
}

// Apply computes totals and variances on a copy of inv and returns it.
func (a Aggregator) Apply(run *Run, inv domain.Invoice) domain.Invoice {
	var sumExcl, sumTax decimal.Decimal
	for i := range inv.LineItems {
		sumExcl = sumExcl.Add(inv.LineItems[i].LineTotalExcl)
		sumTax = sumTax.Add(inv.LineItems[i].LineTotalTax)
	}

	adjustments := inv.ShippingCost.Add(inv.PickingCharge).Add(inv.DiscountAmount)
	inv.TotalExclTax = sumExcl.Add(adjustments).Round(LinePrecision)
	inv.TotalTax = sumTax.Add(adjustments.Mul(a.StandardRate)).Round(LinePrecision)
	inv.TotalAmount = inv.TotalExclTax.Add(inv.TotalTax)

	// variance = published - computed
	inv.SubtotalVariance = inv.SubtotalExclTax.Sub(inv.TotalExclTax).Round(VariancePrecision)
	inv.GSTVariance = inv.GSTTotal.Sub(inv.TotalTax).Round(VariancePrecision)
	inv.TotalVariance = inv.TotalInclTax.Sub(inv.TotalAmount).Round(VariancePrecision)

	if !inv.TotalVariance.IsZero() {
		run.Warnf(stageTotals, "published total %s differs from computed %s (variance %s)",
			inv.TotalInclTax, inv.TotalAmount, inv.TotalVariance)
	}
	return inv
}

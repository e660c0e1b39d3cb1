// Package pipeline wires the reconciliation stages into one sequential pass
// over a record: pack extraction, line reconciliation, supplier rules,
// header coercion, totals and variances, and canonical shaping. One record
// is processed start to finish; batching across records belongs to external
// drivers.
package pipeline

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/raeesul-erabiz/invoice-extractor/internal/canonical"
	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
	"github.com/raeesul-erabiz/invoice-extractor/internal/packsize"
	"github.com/raeesul-erabiz/invoice-extractor/internal/reconcile"
	"github.com/raeesul-erabiz/invoice-extractor/internal/supplier"
)

const stagePipeline = "pipeline"

// Options controls pipeline behaviour.
type Options struct {
	// StandardTaxRate is the GST rate applied to adjustment charges and
	// flat-tax supplier rules. Defaults to 0.10.
	StandardTaxRate decimal.Decimal
}

// DefaultStandardRate is the standard GST rate.
var DefaultStandardRate = decimal.New(1, -1) // 0.1

// Pipeline transforms loosely-typed extraction output into canonical
// invoice records. It holds no per-record state and is safe for concurrent
// use from an external driver.
type Pipeline struct {
	rate decimal.Decimal
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	rate := opts.StandardTaxRate
	if rate.IsZero() {
		rate = DefaultStandardRate
	}
	return &Pipeline{rate: rate}
}

// Process runs one raw record through every stage and returns the canonical
// record along with the run's event stream. It never fails: degraded input
// surfaces as zeroed or defaulted fields, not as an error.
func (p *Pipeline) Process(ctx context.Context, raw domain.RawInvoice, sup domain.Supplement) (domain.Invoice, *reconcile.Run) {
	run := reconcile.NewRun()
	_ = ctx // stages are in-memory transforms; ctx is for future collaborators

	inv := p.ingestHeader(raw)
	norm := domain.NormalizeSupplier(inv.SupplierName)

	// Pack extraction + per-line reconciliation, with item-level failure
	// isolation: one bad line never stops the rest.
	items := make([]domain.LineItem, 0, len(raw.LineItems))
	for idx := range raw.LineItems {
		rawItem := raw.LineItems[idx]

		pack, ok := packsize.Details{}, false
		if norm == domain.SupplierPNMSydney {
			pack, ok = packsize.FromPriceQuantity(rawItem.PriceQuantity)
		}
		if !ok {
			pack = packsize.Parse(rawItem.ProductName.Str())
		}

		item, err := reconcile.ReconcileItem(run, norm, idx, rawItem)
		if err != nil {
			run.Errorf(stagePipeline, "item %d left partially reconciled: %v", idx, err)
			log.Printf("pipeline.Pipeline: run %s item %d: %v", run.ID, idx, err)
		}
		item.OrderUnitSize = pack.OrderUnitSize
		item.PackSize = pack.PackSize
		item.PackUnit = pack.PackUnit
		items = append(items, item)
	}
	inv.LineItems = items
	inv.ItemCount = len(items)

	inv = supplier.Dispatch(inv, &supplier.Env{
		Run:          run,
		Supplement:   sup,
		StandardRate: p.rate,
	})

	inv = reconcile.Aggregator{StandardRate: p.rate}.Apply(run, inv)

	return canonical.Normalize(inv), run
}

// ingestHeader coerces the record header: identity fields to trimmed
// strings, adjustment charges and published totals to definite decimals.
func (p *Pipeline) ingestHeader(raw domain.RawInvoice) domain.Invoice {
	return domain.Invoice{
		SupplierName:   raw.SupplierName.Str(),
		StoreName:      raw.StoreName.Str(),
		InvoiceNumber:  raw.InvoiceNumber.Str(),
		InvoiceDate:    raw.InvoiceDate.Str(),
		DueDate:        raw.DueDate.Str(),
		PurchaseOrder:  raw.PurchaseOrder.Str(),
		DiscountAmount: raw.DiscountAmount.Decimal(),
		ShippingCost:   raw.ShippingCost.Decimal(),
		PickingCharge:  raw.PickingCharge.Decimal(),
		Rounding:       raw.Rounding.Decimal(),

		SubtotalExclTax: raw.TotalExclTax.Decimal(),
		GSTTotal:        raw.TotalTax.Decimal(),
		TotalInclTax:    raw.TotalAmount.Decimal(),

		Extra: raw.Extra,
	}
}

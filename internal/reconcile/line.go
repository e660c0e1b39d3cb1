// Package reconcile derives and validates the financial fields of a single
// invoice record: per-line amounts, invoice totals, and the variances
// against the document's published totals.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/raeesul-erabiz/invoice-extractor/internal/coerce"
	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
)

// Monetary fields are held at four decimal places; variances at two.
const (
	LinePrecision     int32 = 4
	VariancePrecision int32 = 2
)

const stageLine = "line_reconcile"

var hundred = decimal.NewFromInt(100)

// ReconcileItem turns one loosely-typed line into a fully populated,
// internally consistent LineItem. supplier is the normalized supplier
// identity of the enclosing record.
//
// Failure is isolated at item granularity: a panic while deriving fields is
// recovered and returned as an error, and the item is left in whatever
// partially-populated state it had reached.
func ReconcileItem(run *Run, supplier string, idx int, raw domain.RawLineItem) (item domain.LineItem, err error) {
	item = domain.LineItem{
		ProductName:  CleanName(raw.ProductName.Str()),
		ProductCode:  raw.ProductCode.Str(),
		OrderUnit:    raw.OrderUnit.Str(),
		GSTIndicator: domain.GSTFree,
		Extra:        raw.Extra,
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("line item %d: %v", idx, p)
		}
	}()

	qty := decimal.NewFromInt(1)
	if !raw.OrderQuantity.IsEmpty() {
		qty = raw.OrderQuantity.Decimal()
	}
	excl := raw.LineTotalExcl.Decimal()
	incl := raw.LineTotalIncl.Decimal()

	// PNM Sydney's invoice layout makes the upstream extractor misread the
	// quantity column; the transient "price/quantity" field carries enough
	// information to reinterpret it.
	if supplier == domain.SupplierPNMSydney && !raw.PriceQuantity.IsEmpty() && !excl.IsZero() {
		pq := raw.PriceQuantity.Decimal()
		reread := qty.Mul(pq).Div(excl)
		run.Infof(stageLine, "item %d: quantity reinterpreted %s -> %s via price/quantity", idx, qty, reread)
		qty = reread
	}

	tax := resolveTax(raw.LineTotalTax, excl, incl).Round(LinePrecision)

	// Excl/incl completion. The cases are mutually exclusive and ordered:
	// a zero-tax line with only an incl amount is a tax-exempt passthrough,
	// and excl is authoritative over incl when both are present.
	switch {
	case incl.IsPositive() && tax.IsZero():
		excl = incl
	case excl.IsPositive() && incl.IsZero():
		incl = excl.Add(tax)
	case incl.IsPositive() && excl.IsZero():
		excl = incl.Sub(tax)
	case excl.IsPositive() && incl.IsPositive():
		incl = excl.Add(tax)
	}

	item.OrderQuantity = qty
	item.LineTotalExcl = excl
	item.LineTotalIncl = incl
	item.LineTotalTax = tax

	unitExcl, unitTax := decimal.Zero, decimal.Zero
	if !qty.IsZero() {
		unitExcl = excl.Div(qty).Round(LinePrecision)
		unitTax = tax.Div(qty).Round(LinePrecision)
	}
	item.OrderUnitPriceExcl = unitExcl
	item.OrderUnitTax = unitTax
	item.OrderUnitPriceIncl = unitExcl.Add(unitTax)

	if unitTax.IsPositive() {
		item.GSTIndicator = domain.GSTApplied
	}
	if item.OrderUnit == "" {
		item.OrderUnit = domain.DefaultOrderUnit
	}
	return item, nil
}

// resolveTax classifies the raw tax field and produces a tax amount:
// percent strings and bare whole numbers are rates applied to excl,
// currency-prefixed and decimal-pointed strings are literal amounts, and
// anything else falls back to incl minus excl when both are positive.
func resolveTax(v coerce.Value, excl, incl decimal.Decimal) decimal.Decimal {
	switch v.Kind() {
	case coerce.KindPercent:
		pct, _ := v.Percent()
		return excl.Mul(pct).Div(hundred)
	case coerce.KindCurrency, coerce.KindDecimal:
		return v.Decimal()
	case coerce.KindWhole:
		// Whole-number tax columns mean a rate in the upstream document
		// formats, not an amount.
		return excl.Mul(v.Decimal()).Div(hundred)
	default:
		if incl.IsPositive() && excl.IsPositive() {
			return incl.Sub(excl)
		}
		return decimal.Zero
	}
}

// ApplyFlatTax overrides a reconciled item's tax with a flat rate on its
// excl amount and rebuilds every dependent field. Used by supplier rules
// that re-reconcile after correcting a line.
func ApplyFlatTax(item *domain.LineItem, rate decimal.Decimal) {
	tax := item.LineTotalExcl.Mul(rate).Round(LinePrecision)
	item.LineTotalTax = tax
	item.LineTotalIncl = item.LineTotalExcl.Add(tax)

	qty := item.OrderQuantity
	unitExcl, unitTax := decimal.Zero, decimal.Zero
	if !qty.IsZero() {
		unitExcl = item.LineTotalExcl.Div(qty).Round(LinePrecision)
		unitTax = tax.Div(qty).Round(LinePrecision)
	}
	item.OrderUnitPriceExcl = unitExcl
	item.OrderUnitTax = unitTax
	item.OrderUnitPriceIncl = unitExcl.Add(unitTax)

	item.GSTIndicator = domain.GSTFree
	if unitTax.IsPositive() {
		item.GSTIndicator = domain.GSTApplied
	}
}

// CleanName collapses embedded newlines and repeated whitespace in a
// product name.
func CleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

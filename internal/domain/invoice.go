package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Canonical output carries plain JSON numbers, not quoted decimals.
	decimal.MarshalJSONWithoutQuotes = true
}

// Invoice is the canonical financial record handed to downstream accounting
// ingestion. Struct field order is the canonical key order of the serialized
// record; Extra keys are appended after the canonical ones.
//
// SubtotalExclTax, GSTTotal, and TotalInclTax are the published totals
// asserted by the source document. TotalExclTax, TotalTax, and TotalAmount
// are recomputed from the reconciled line items. Variances are published
// minus computed.
type Invoice struct {
	SupplierName   string          `json:"supplier_name"`
	StoreName      string          `json:"store_name"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceDate    string          `json:"invoice_date"`
	DueDate        string          `json:"due_date"`
	PurchaseOrder  string          `json:"purchase_order"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	PickingCharge  decimal.Decimal `json:"picking_charge"`
	Rounding       decimal.Decimal `json:"rounding"`

	SubtotalExclTax decimal.Decimal `json:"subtotal_excl_tax"`
	GSTTotal        decimal.Decimal `json:"gst_total"`
	TotalInclTax    decimal.Decimal `json:"total_incl_tax"`

	TotalExclTax decimal.Decimal `json:"total_excl_tax"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	TotalAmount  decimal.Decimal `json:"total_amount"`

	SubtotalVariance decimal.Decimal `json:"subtotal_variance"`
	GSTVariance      decimal.Decimal `json:"gst_variance"`
	TotalVariance    decimal.Decimal `json:"total_variance"`

	ItemCount int        `json:"item_count"`
	LineItems []LineItem `json:"Line_Items"`

	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON emits the canonical field order followed by any retained
// source keys.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	type alias Invoice
	b, err := json.Marshal(alias(inv))
	if err != nil {
		return nil, err
	}
	return appendExtras(b, inv.Extra)
}

// LineItem is one fully reconciled purchasable line. It has no
// "price/quantity" field: the transient key cannot survive canonical
// shaping.
type LineItem struct {
	ProductName        string          `json:"product_name"`
	ProductCode        string          `json:"product_code"`
	OrderQuantity      decimal.Decimal `json:"order_quantity"`
	OrderUnit          string          `json:"order_unit"`
	OrderUnitSize      int             `json:"order_unit_size"`
	PackSize           decimal.Decimal `json:"pack_size"`
	PackUnit           PackUnit        `json:"pack_unit"`
	OrderUnitPriceExcl decimal.Decimal `json:"order_unit_price_excl"`
	OrderUnitPriceIncl decimal.Decimal `json:"order_unit_price_incl"`
	OrderUnitTax       decimal.Decimal `json:"order_unit_tax"`
	GSTIndicator       GSTIndicator    `json:"gst_indicator"`
	LineTotalExcl      decimal.Decimal `json:"line_total_excl"`
	LineTotalIncl      decimal.Decimal `json:"line_total_incl"`
	LineTotalTax       decimal.Decimal `json:"line_total_tax"`

	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON emits the canonical field order followed by any retained
// source keys.
func (li LineItem) MarshalJSON() ([]byte, error) {
	type alias LineItem
	b, err := json.Marshal(alias(li))
	if err != nil {
		return nil, err
	}
	return appendExtras(b, li.Extra)
}

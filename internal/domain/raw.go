package domain

import (
	"encoding/json"

	"github.com/raeesul-erabiz/invoice-extractor/internal/coerce"
)

// RawInvoice is the loosely-typed record produced by the upstream structured
// extraction step. Every scalar may legitimately arrive as a string, number,
// null, or be absent; nothing here is trusted until reconciliation.
// Keys not in the known set are retained in Extra so canonical shaping can
// append them without data loss.
type RawInvoice struct {
	SupplierName   coerce.Value `json:"supplier_name"`
	StoreName      coerce.Value `json:"store_name"`
	InvoiceNumber  coerce.Value `json:"invoice_number"`
	InvoiceDate    coerce.Value `json:"invoice_date"`
	DueDate        coerce.Value `json:"due_date"`
	PurchaseOrder  coerce.Value `json:"purchase_order"`
	DiscountAmount coerce.Value `json:"discount_amount"`
	TotalExclTax   coerce.Value `json:"total_excl_tax"`
	ShippingCost   coerce.Value `json:"shipping_cost"`
	TotalTax       coerce.Value `json:"total_tax"`
	Rounding       coerce.Value `json:"rounding"`
	PickingCharge  coerce.Value `json:"picking_charge"`
	TotalAmount    coerce.Value `json:"total_amount"`

	LineItems []RawLineItem `json:"Line_Items"`

	Extra map[string]json.RawMessage `json:"-"`
}

var rawInvoiceKeys = []string{
	"supplier_name", "store_name", "invoice_number", "invoice_date",
	"due_date", "purchase_order", "discount_amount", "total_excl_tax",
	"shipping_cost", "total_tax", "rounding", "picking_charge",
	"total_amount", "Line_Items",
}

// UnmarshalJSON decodes the known fields and collects every unknown
// top-level key into Extra.
func (r *RawInvoice) UnmarshalJSON(b []byte) error {
	type alias RawInvoice
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	a.Extra = collectExtras(b, rawInvoiceKeys)
	*r = RawInvoice(a)
	return nil
}

// RawLineItem is one loosely-typed purchasable line. The "price/quantity"
// field is transient: a handful of supplier rules consume it and it must
// never survive into the canonical shape.
type RawLineItem struct {
	ProductName        coerce.Value `json:"product_name"`
	ProductCode        coerce.Value `json:"product_code"`
	OrderQuantity      coerce.Value `json:"order_quantity"`
	OrderUnit          coerce.Value `json:"order_unit"`
	OrderUnitPriceExcl coerce.Value `json:"order_unit_price_excl"`
	OrderUnitPriceIncl coerce.Value `json:"order_unit_price_incl"`
	OrderUnitTax       coerce.Value `json:"order_unit_tax"`
	GSTIndicator       coerce.Value `json:"gst_indicator"`
	LineTotalExcl      coerce.Value `json:"line_total_excl"`
	LineTotalIncl      coerce.Value `json:"line_total_incl"`
	LineTotalTax       coerce.Value `json:"line_total_tax"`
	PriceQuantity      coerce.Value `json:"price/quantity"`

	Extra map[string]json.RawMessage `json:"-"`
}

var rawLineItemKeys = []string{
	"product_name", "product_code", "order_quantity", "order_unit",
	"order_unit_price_excl", "order_unit_price_incl", "order_unit_tax",
	"gst_indicator", "line_total_excl", "line_total_incl",
	"line_total_tax", "price/quantity",
}

// UnmarshalJSON decodes the known fields and collects every unknown key
// into Extra.
func (r *RawLineItem) UnmarshalJSON(b []byte) error {
	type alias RawLineItem
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	a.Extra = collectExtras(b, rawLineItemKeys)
	*r = RawLineItem(a)
	return nil
}

// collectExtras returns the keys of the JSON object not in known, or nil.
func collectExtras(b []byte, known []string) map[string]json.RawMessage {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

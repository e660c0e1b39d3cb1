package domain

// Supplement carries optional secondary extraction output alongside a raw
// record: the raw document text, and a best-effort alternate rendering of
// the line items. Both come from upstream collaborators; supplier rules that
// need them treat absence as "rule does not apply".
type Supplement struct {
	RawText   string               `json:"raw_text"`
	LineItems []SupplementLineItem `json:"line_items"`
}

// SupplementLineItem pairs a product code with the product name seen in the
// alternate rendering, for cross-document name enrichment.
type SupplementLineItem struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
}

package domain

// PackUnit is the normalized unit of measure for a pack descriptor. Units
// outside the known set pass through as-is.
type PackUnit string

const (
	PackUnitKG PackUnit = "KG"
	PackUnitL  PackUnit = "L"
	PackUnitEA PackUnit = "EA"
)

// GSTIndicator marks whether a line item attracts GST.
type GSTIndicator string

const (
	GSTApplied GSTIndicator = "GST"
	GSTFree    GSTIndicator = "NO GST"
)

// DefaultOrderUnit is used when the extractor supplies no order unit label.
const DefaultOrderUnit = "EA"

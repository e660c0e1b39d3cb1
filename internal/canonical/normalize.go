// Package canonical enforces the terminal shape of a reconciled record: a
// fixed key order, populated pack and unit defaults, an accurate item count,
// and no transient fields. Key ordering itself lives in the declaration
// order of domain.Invoice and domain.LineItem; unknown source keys are
// appended after the canonical ones by their MarshalJSON.
package canonical

import (
	"encoding/json"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
	"github.com/raeesul-erabiz/invoice-extractor/internal/packsize"
)

// Indent matches the artifact format expected by the downstream collaborator.
const Indent = "    "

// Normalize returns the terminal, side-effect-free shaping of a record.
func Normalize(inv domain.Invoice) domain.Invoice {
	items := make([]domain.LineItem, len(inv.LineItems))
	copy(items, inv.LineItems)

	for i := range items {
		if items[i].PackUnit == "" {
			d := packsize.Defaults()
			items[i].OrderUnitSize = d.OrderUnitSize
			items[i].PackSize = d.PackSize
			items[i].PackUnit = d.PackUnit
		}
		if items[i].OrderUnit == "" {
			items[i].OrderUnit = domain.DefaultOrderUnit
		}
		if items[i].GSTIndicator == "" {
			items[i].GSTIndicator = domain.GSTFree
		}
	}

	inv.LineItems = items
	inv.ItemCount = len(items)
	return inv
}

// MarshalIndent serializes a canonical record with 4-space indentation.
func MarshalIndent(inv domain.Invoice) ([]byte, error) {
	return json.MarshalIndent(inv, "", Indent)
}

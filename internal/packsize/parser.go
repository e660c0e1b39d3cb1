// Package packsize derives pack descriptors (order unit size, pack size,
// pack unit) from free-text product names.
//
// The parser is an ordered chain of regex patterns evaluated top to bottom;
// the first pattern that matches wins. The ordering is load-bearing:
// "6X1KG" must hit the combined qty-by-size pattern before the bare "1KG"
// single-unit pattern gets a chance. Do not re-sort or merge the list.
package packsize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/raeesul-erabiz/invoice-extractor/internal/coerce"
	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
)

// Details is the pack descriptor triple for one line item.
type Details struct {
	OrderUnitSize int
	PackSize      decimal.Decimal
	PackUnit      domain.PackUnit
}

// Defaults returns the descriptor used when no pattern matches: a single
// each-unit of size 1.
func Defaults() Details {
	return Details{
		OrderUnitSize: 1,
		PackSize:      decimal.NewFromInt(1),
		PackUnit:      domain.PackUnitEA,
	}
}

type patternKind int

const (
	kindQtyBySizeGM    patternKind = iota // 85X160GM
	kindQtyBySizeUnit                     // 6X1KG, 8X9PC
	kindPackByCount                       // 30PKX6
	kindSizeUnitByCnt                     // 1.5KX8, 900GX10, 500MLX24, 1LX8
	kindBottleByCount                     // 600 PET X24
	kindSizeUnitSingle                    // 1.5K, 165G, 500ML, 1L
	kindCountOnly                         // 8X1
	kindLeadingNumber                     // 4000
	kindPackOnly                          // 6PK
)

type pattern struct {
	re   *regexp.Regexp
	kind patternKind
}

// patterns is evaluated in order; first match wins.
var patterns = []pattern{
	{regexp.MustCompile(`(?i)(\d+)X(\d+(?:\.\d+)?)(GM)`), kindQtyBySizeGM},
	{regexp.MustCompile(`(?i)(\d+)X(\d+(?:\.\d+)?)(KG|G|L|ML|PC|EA)`), kindQtyBySizeUnit},

	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(PK)X(\d+)`), kindPackByCount},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(K|KG)X(\d+)`), kindSizeUnitByCnt},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(G)X(\d+)`), kindSizeUnitByCnt},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(ML)X(\d+)`), kindSizeUnitByCnt},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(L)X(\d+)`), kindSizeUnitByCnt},
	{regexp.MustCompile(`(?i)(\d+)\s*(PET|FLO|NRB)\s*X(\d+)`), kindBottleByCount},

	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(K|KG)`), kindSizeUnitSingle},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(G)`), kindSizeUnitSingle},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(ML)`), kindSizeUnitSingle},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(L)`), kindSizeUnitSingle},

	{regexp.MustCompile(`(\d+)X(\d+)`), kindCountOnly},
	{regexp.MustCompile(`^(\d+)\b`), kindLeadingNumber},
	{regexp.MustCompile(`(?i)(\d+)(PK)`), kindPackOnly},
}

var thousand = decimal.NewFromInt(1000)

// Parse derives pack details from a product name. When no pattern matches,
// Defaults() applies, so the descriptor triple is always populated.
func Parse(productName string) Details {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(productName)
		if m == nil {
			continue
		}
		switch p.kind {
		case kindQtyBySizeGM:
			// grams expressed as "GM": always converted to KG
			return Details{
				OrderUnitSize: mustInt(m[1]),
				PackSize:      mustDecimal(m[2]).Div(thousand),
				PackUnit:      domain.PackUnitKG,
			}
		case kindQtyBySizeUnit:
			size, unit := normalizeUnit(mustDecimal(m[2]), m[3])
			return Details{OrderUnitSize: mustInt(m[1]), PackSize: size, PackUnit: unit}
		case kindPackByCount:
			return Details{
				OrderUnitSize: mustInt(m[1]),
				PackSize:      mustDecimal(m[3]),
				PackUnit:      domain.PackUnitEA,
			}
		case kindSizeUnitByCnt:
			size, unit := normalizeUnit(mustDecimal(m[1]), m[2])
			return Details{OrderUnitSize: mustInt(m[3]), PackSize: size, PackUnit: unit}
		case kindBottleByCount:
			// bottle volumes are millilitres
			return Details{
				OrderUnitSize: mustInt(m[3]),
				PackSize:      mustDecimal(m[1]).Div(thousand),
				PackUnit:      domain.PackUnitL,
			}
		case kindSizeUnitSingle:
			size, unit := normalizeUnit(mustDecimal(m[1]), m[2])
			return Details{OrderUnitSize: 1, PackSize: size, PackUnit: unit}
		case kindCountOnly:
			return Details{
				OrderUnitSize: mustInt(m[1]),
				PackSize:      mustDecimal(m[2]),
				PackUnit:      domain.PackUnitEA,
			}
		case kindLeadingNumber:
			return Defaults()
		case kindPackOnly:
			d := Defaults()
			d.OrderUnitSize = mustInt(m[1])
			return d
		}
	}
	return Defaults()
}

// FromPriceQuantity derives pack details from the transient "price/quantity"
// field's denominator. This is the PNM Sydney override of the generic
// product-name parse, not an extra pattern.
func FromPriceQuantity(pq coerce.Value) (Details, bool) {
	_, den, ok := pq.Fraction()
	if !ok || !den.IsPositive() {
		return Details{}, false
	}
	return Details{OrderUnitSize: 1, PackSize: den, PackUnit: domain.PackUnitEA}, true
}

// normalizeUnit converts a matched unit token to the canonical pack unit,
// scaling grams to kilograms and millilitres to litres.
func normalizeUnit(size decimal.Decimal, unit string) (decimal.Decimal, domain.PackUnit) {
	switch strings.ToUpper(unit) {
	case "G", "GM":
		return size.Div(thousand), domain.PackUnitKG
	case "ML":
		return size.Div(thousand), domain.PackUnitL
	case "K", "KG":
		return size, domain.PackUnitKG
	case "L":
		return size, domain.PackUnitL
	case "PC", "EA":
		return size, domain.PackUnitEA
	default:
		return size, domain.PackUnit(strings.ToUpper(unit))
	}
}

func mustInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

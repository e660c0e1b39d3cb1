package domain

import "strings"

// Normalized supplier identities with bespoke handling in the pipeline.
const (
	SupplierPNMSydney = "pnm sydney pty ltd"
)

// Canonical supplier display names written back onto records.
const (
	SupplierAnchorPackaging = "Anchor Packaging"
	SupplierLifeGrain       = "LifeGrain Central Kitchen"
)

// NormalizeSupplier reduces a free-text supplier name to the lower-cased,
// whitespace-trimmed identity every supplier rule keys on.
func NormalizeSupplier(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

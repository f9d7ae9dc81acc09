// Package pricing derives monetary breakdowns from cart contents. All
// functions are pure; nothing here touches storage.
package pricing

import (
	"math"

	"github.com/Sehnya/photo-web-demo/internal/cart"
)

// DefaultJurisdiction is applied when a code has no entry in the table.
const DefaultJurisdiction = "Other"

var taxRates = map[string]float64{
	"CA":                0.0825,
	"NY":                0.088,
	"TX":                0.0625,
	"FL":                0.06,
	"IL":                0.1025,
	DefaultJurisdiction: 0.05,
}

type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	TaxRate  float64 `json:"tax_rate"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// TaxRate resolves a jurisdiction code to its sales-tax rate, falling
// back to the "Other" rate for unknown codes.
func TaxRate(jurisdiction string) float64 {
	if rate, ok := taxRates[jurisdiction]; ok {
		return rate
	}
	return taxRates[DefaultJurisdiction]
}

// ComputeBreakdown prices the given items under the given jurisdiction.
// Total is subtotal + tax by construction, so the two sides never drift.
func ComputeBreakdown(items []cart.Item, jurisdiction string) Breakdown {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Qty)
	}

	rate := TaxRate(jurisdiction)
	tax := subtotal * rate

	return Breakdown{
		Subtotal: subtotal,
		TaxRate:  rate,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Round2 rounds to cents for display. Stored values keep full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

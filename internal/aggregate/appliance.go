package aggregate

import (
	"math"
	"strings"

	"github.com/fplstat/fplstat/internal/fpl"
)

// allocateAppliancePercentages distributes integer percentages across
// categories against a running budget of 100. Each category gets its rounded
// raw percentage while that fits; once a rounded value reaches or exceeds
// what remains, the category is clamped to the current remainder and the
// remainder stays put for every later category. The order upstream sends is
// therefore significant and must be preserved, and totals can land on either
// side of 100 when upstream percentages do not sum cleanly.
func allocateAppliancePercentages(categories []fpl.ApplianceCategory) map[string]int {
	if len(categories) == 0 {
		return nil
	}

	remaining := 100
	out := make(map[string]int, len(categories))
	for _, c := range categories {
		pct := int(math.Round(c.PercentageDollar))
		if pct < remaining {
			remaining -= pct
		} else {
			pct = remaining
		}
		out[strings.ReplaceAll(c.Category, " ", "_")] = pct
	}
	return out
}

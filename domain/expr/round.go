package expr

import "math"

// Round3 rounds to 3 decimal places, the fixed precision of the output
// table. Significance decisions are always made before rounding.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

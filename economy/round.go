package economy

import "math"

// Round2 rounds to two decimal places with halves rounding up.
// Every currency update is rounded on its own; gains and wages are
// separate steps.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

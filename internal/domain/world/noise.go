package world

import "math"

// Noise is the seeded scalar field every terrain lookup is derived from.
// Map identity depends on these constants; do not tune them.
func Noise(x, y, seed float64) float64 {
	n := math.Sin(x*12.9898+y*78.233+seed*43758.5453) * 43758.5453
	return n - math.Floor(n)
}

package physics

import "math"

// Fast math helpers for the hot force loop. These stay in float32 to avoid
// the float64 round trips Go's math package requires.

// fastSqrt approximates sqrt(x) using fast inverse sqrt with one Newton step.
func fastSqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	i := math.Float32bits(x)
	i = 0x5f375a86 - (i >> 1)
	y := math.Float32frombits(i)
	y = y * (1.5 - 0.5*x*y*y)
	return x * y
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

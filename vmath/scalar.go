package vmath

// Epsilon is the length below which a vector is treated as having no direction
const Epsilon = 1e-9

// Clamp limits x into [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

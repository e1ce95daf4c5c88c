package utils

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the range [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

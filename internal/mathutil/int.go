package mathutil

// IntMin returns the smaller of two ints.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntAbs returns the absolute value of an int.
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp bounds x to [lo, hi]. hi wins when lo > hi.
func Clamp(x, lo, hi int) int {
	return IntMin(IntMax(x, lo), hi)
}

// Manhattan returns the grid distance between two points.
func Manhattan(x1, y1, x2, y2 int) int {
	return IntAbs(x1-x2) + IntAbs(y1-y2)
}

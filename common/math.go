package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ApproxEqual reports whether a and b are within tol of each other.
func ApproxEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

package common

import "math"

const (
	// ScreenWidth and ScreenHeight are the logical layout size.
	ScreenWidth  = 1280
	ScreenHeight = 720

	// TPS is the fixed simulation rate.
	TPS = 60

	// Gravity is the default downward acceleration in px/s^2 (screen y grows down).
	Gravity = 600.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

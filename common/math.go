package common

import "math"

// Base window size; the flat UI is laid out against it.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// DampFactor converts a per-60Hz-frame damping factor into the interpolation
// weight for a frame of dt seconds. Factors outside (0, 1) snap.
func DampFactor(damping, dt float64) float64 {
	if damping <= 0 || damping >= 1 {
		return 1
	}
	return 1 - math.Pow(1-damping, dt*60)
}

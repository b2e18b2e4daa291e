package mathutil

import (
	"errors"

	"github.com/chewxy/math32"
)

// Epsilon is the magnitude below which vectors, quaternions and determinants
// are treated as zero.
const Epsilon = 1e-10

// slerpLinearThreshold is the |cos θ| above which QuatSlerp falls back to
// component-wise linear interpolation.
const slerpLinearThreshold = 0.9995

var (
	// ErrSingularMatrix is returned by Inverse when |det| < Epsilon.
	ErrSingularMatrix = errors.New("mathutil: singular matrix")

	// ErrDegenerateProjection is returned by Perspective for a zero aspect
	// ratio or coincident clip planes.
	ErrDegenerateProjection = errors.New("mathutil: degenerate projection")
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * math32.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float32) float32 {
	return r * 180 / math32.Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

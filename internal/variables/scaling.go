package variables

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RescaleVector returns (v - shift) * scalingFactor as a new slice.
func RescaleVector(v []float64, shift, scalingFactor float64) []float64 {
	out := append([]float64(nil), v...)
	floats.AddConst(-shift, out)
	floats.Scale(scalingFactor, out)
	return out
}

// RescaleAndInvertVector rescales v and reflects the result about 0.5, so the
// former minimum becomes the maximum and vice versa.
func RescaleAndInvertVector(v []float64, shift, scalingFactor float64) []float64 {
	out := RescaleVector(v, shift, scalingFactor)
	invert(out)
	return out
}

// AutorescaleVector min-max normalizes v onto [0, 1], inverted when asked.
// The minimum maps to exactly 0 and the maximum to exactly 1 (the reverse when
// inverted). A constant vector has no range and maps to all zeros in both
// orientations.
func AutorescaleVector(v []float64, inverted bool) []float64 {
	out := make([]float64, len(v))
	if len(v) == 0 {
		return out
	}

	shift := floats.Min(v)
	peak := floats.Max(v)
	span := peak - shift

	switch {
	case span == 0:
		return out
	case math.IsInf(span, 1):
		// max - min overflowed; the halved span is finite.
		half := peak/2 - shift/2
		for i, x := range v {
			out[i] = (x/2 - shift/2) / half
		}
	default:
		for i, x := range v {
			out[i] = (x - shift) / span
		}
	}

	if inverted {
		invert(out)
	}
	return out
}

func invert(v []float64) {
	floats.Scale(-1, v)
	floats.AddConst(1, v)
}

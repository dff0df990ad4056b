package variables

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmptyValues     = errors.New("the values cannot be empty")
	ErrNonFiniteValues = errors.New("the values cannot be NaN or infinite")
)

// Values holds one criterion's observations, one per alternative.
// It is never empty and every entry is finite.
type Values struct {
	data []float64
}

// NewValues copies data after checking it is non-empty and finite.
func NewValues(data []float64) (Values, error) {
	if len(data) == 0 {
		return Values{}, ErrEmptyValues
	}
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Values{}, ErrNonFiniteValues
		}
	}
	return Values{data: append([]float64(nil), data...)}, nil
}

// Len returns the number of observations.
func (v Values) Len() int {
	return len(v.data)
}

// At returns the i-th observation.
func (v Values) At(i int) float64 {
	return v.data[i]
}

// Slice returns a copy of the observations.
func (v Values) Slice() []float64 {
	return append([]float64(nil), v.data...)
}

func (v Values) Min() float64 {
	return floats.Min(v.data)
}

func (v Values) Max() float64 {
	return floats.Max(v.data)
}

package solver

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// L2Norm returns the Euclidean length of x.
func L2Norm(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, 2)
}

// IndexOfBestVector returns the row of m closest to the origin. Ties go to the
// earliest row. An empty matrix yields -1.
func IndexOfBestVector(m mat.Matrix) int {
	index, _ := bestVector(m)
	return index
}

func bestVector(m mat.Matrix) (int, float64) {
	rows, _ := m.Dims()
	best, bestNorm := -1, 0.0
	row := []float64(nil)
	for i := range rows {
		row = mat.Row(row, i, m)
		norm := L2Norm(row)
		if best < 0 || norm < bestNorm {
			best, bestNorm = i, norm
		}
	}
	return best, bestNorm
}

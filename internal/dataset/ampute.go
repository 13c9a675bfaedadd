package dataset

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Ampute injects missingness completely at random at the given rate.
// It returns the amputed copy and the mask, where mask 1 means observed.
// The ground truth is left untouched.
func Ampute(data *mat.Dense, missRate float64, rnd *rand.Rand) (amputed, mask *mat.Dense) {
	rows, cols := data.Dims()
	amputed = mat.DenseCopyOf(data)
	mask = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rnd.Float64() < 1-missRate {
				mask.Set(i, j, 1)
			} else {
				amputed.Set(i, j, math.NaN())
			}
		}
	}
	return amputed, mask
}

// Mask derives the observation mask of a matrix with NaN holes.
func Mask(data *mat.Dense) *mat.Dense {
	rows, cols := data.Dims()
	mask := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if !math.IsNaN(data.At(i, j)) {
				mask.Set(i, j, 1)
			}
		}
	}
	return mask
}

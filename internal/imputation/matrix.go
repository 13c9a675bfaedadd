package imputation

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// maskOf derives the observation mask, 1 for observed and 0 for NaN.
func maskOf(data *mat.Dense) *mat.Dense {
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

// fillZero replaces NaN cells with zero.
func fillZero(data *mat.Dense) *mat.Dense {
	rows, cols := data.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := data.At(i, j); !math.IsNaN(v) {
				out.Set(i, j, v)
			}
		}
	}
	return out
}

// combine keeps x where the mask is set and takes z elsewhere,
// i.e. mask*x + (1-mask)*z.
func combine(mask, x, z *mat.Dense) *mat.Dense {
	rows, cols := mask.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m := mask.At(i, j)
			out.Set(i, j, m*x.At(i, j)+(1-m)*z.At(i, j))
		}
	}
	return out
}

// hstack concatenates two matrices column-wise.
func hstack(a, b *mat.Dense) *mat.Dense {
	rows, ca := a.Dims()
	_, cb := b.Dims()
	out := mat.NewDense(rows, ca+cb, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < ca; j++ {
			out.Set(i, j, a.At(i, j))
		}
		for j := 0; j < cb; j++ {
			out.Set(i, ca+j, b.At(i, j))
		}
	}
	return out
}

// slice returns the given column range as a copy.
func slice(m *mat.Dense, from, to int) *mat.Dense {
	rows, _ := m.Dims()
	out := mat.NewDense(rows, to-from, nil)
	for i := 0; i < rows; i++ {
		for j := from; j < to; j++ {
			out.Set(i, j-from, m.At(i, j))
		}
	}
	return out
}

// pick selects the given rows as a copy.
func pick(m *mat.Dense, idx []int) *mat.Dense {
	_, cols := m.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for i, r := range idx {
		for j := 0; j < cols; j++ {
			out.Set(i, j, m.At(r, j))
		}
	}
	return out
}

// uniformMat fills a matrix with draws from [lo, hi).
func uniformMat(rnd *rand.Rand, rows, cols int, lo, hi float64) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, lo+rnd.Float64()*(hi-lo))
		}
	}
	return out
}

// bernoulliMat fills a matrix with ones at probability p.
func bernoulliMat(rnd *rand.Rand, rows, cols int, p float64) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rnd.Float64() < p {
				out.Set(i, j, 1)
			}
		}
	}
	return out
}

// sampleBatch draws batch row indices without replacement.
func sampleBatch(rnd *rand.Rand, total, batch int) []int {
	if batch > total {
		batch = total
	}
	return rnd.Perm(total)[:batch]
}

// addInto accumulates src gradients into dst, element by element.
func addInto(dst, src []*mat.Dense) {
	for i := range dst {
		dst[i].Add(dst[i], src[i])
	}
}

// copyGrads snapshots a gradient set.
func copyGrads(grads []*mat.Dense) []*mat.Dense {
	out := make([]*mat.Dense, len(grads))
	for i, g := range grads {
		out[i] = mat.DenseCopyOf(g)
	}
	return out
}

// sumMasked returns the sum of the mask entries.
func sumMasked(mask *mat.Dense) float64 {
	rows, cols := mask.Dims()
	sum := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum += mask.At(i, j)
		}
	}
	return sum
}

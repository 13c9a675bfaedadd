package imputation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Scaler is a per column min-max scaler with a NaN aware fit.
type Scaler struct {
	min, span []float64
	lo, hi    float64
}

// FitScaler learns the per column bounds, ignoring NaN cells.
// The span carries a small guard against zero-range columns.
func FitScaler(data *mat.Dense, lo, hi float64) *Scaler {
	rows, cols := data.Dims()
	s := &Scaler{
		min:  make([]float64, cols),
		span: make([]float64, cols),
		lo:   lo,
		hi:   hi,
	}
	for j := 0; j < cols; j++ {
		min, max := math.MaxFloat64, -math.MaxFloat64
		for i := 0; i < rows; i++ {
			v := data.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		if min > max {
			min, max = 0, 0
		}
		s.min[j] = min
		s.span[j] = max - min + 1e-6
	}
	return s
}

// Transform scales into [lo, hi]; NaN cells stay NaN.
func (s *Scaler) Transform(data *mat.Dense) *mat.Dense {
	rows, cols := data.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := data.At(i, j)
			if math.IsNaN(v) {
				out.Set(i, j, v)
				continue
			}
			out.Set(i, j, s.lo+(v-s.min[j])/s.span[j]*(s.hi-s.lo))
		}
	}
	return out
}

// Inverse maps scaled values back to the source range.
func (s *Scaler) Inverse(data *mat.Dense) *mat.Dense {
	rows, cols := data.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := data.At(i, j)
			if math.IsNaN(v) {
				out.Set(i, j, v)
				continue
			}
			out.Set(i, j, (v-s.lo)/(s.hi-s.lo)*s.span[j]+s.min[j])
		}
	}
	return out
}

// Round snaps the imputed values of near-integer columns.
// A column counts as near-integer when its observed values take fewer
// than 20 distinct values, as in the original study.
func Round(imputed, original *mat.Dense) *mat.Dense {
	rows, cols := imputed.Dims()
	out := mat.DenseCopyOf(imputed)
	for j := 0; j < cols; j++ {
		distinct := make(map[float64]bool)
		for i := 0; i < rows; i++ {
			if v := original.At(i, j); !math.IsNaN(v) {
				distinct[v] = true
			}
		}
		if len(distinct) >= 20 {
			continue
		}
		for i := 0; i < rows; i++ {
			out.Set(i, j, math.Round(out.At(i, j)))
		}
	}
	return out
}

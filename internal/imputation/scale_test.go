package imputation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestScaler_RoundTrip(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{
		1, 100,
		2, 200,
		3, 300,
	})

	scaler := FitScaler(data, 0, 1)
	scaled := scaler.Transform(data)

	rows, cols := scaled.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := scaled.At(i, j)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}

	back := scaler.Inverse(scaled)
	assert.True(t, mat.EqualApprox(data, back, 1e-6))
}

func TestScaler_NaN(t *testing.T) {
	data := mat.NewDense(2, 1, []float64{1, math.NaN()})

	scaler := FitScaler(data, -1, 1)
	scaled := scaler.Transform(data)

	assert.False(t, math.IsNaN(scaled.At(0, 0)))
	assert.True(t, math.IsNaN(scaled.At(1, 0)))
}

func TestScaler_ConstantColumn(t *testing.T) {
	data := mat.NewDense(3, 1, []float64{5, 5, 5})

	scaler := FitScaler(data, 0, 1)
	scaled := scaler.Transform(data)

	for i := 0; i < 3; i++ {
		v := scaled.At(i, 0)
		assert.False(t, math.IsNaN(v))
		assert.InDelta(t, 0, v, 1e-3)
	}
}

func TestRound(t *testing.T) {
	// first column cycles through 3 values, second takes 25 distinct ones
	original := mat.NewDense(25, 2, nil)
	imputed := mat.NewDense(25, 2, nil)
	for i := 0; i < 25; i++ {
		original.Set(i, 0, float64(i%3))
		original.Set(i, 1, float64(i)*0.17)
		imputed.Set(i, 0, float64(i%3))
		imputed.Set(i, 1, float64(i)*0.17)
	}
	imputed.Set(0, 0, 1.2)
	imputed.Set(1, 1, 0.27)

	out := Round(imputed, original)

	// few distinct values gets snapped, the continuous column stays untouched
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 0.27, out.At(1, 1))
}

func TestRMSE(t *testing.T) {
	truth := mat.NewDense(2, 2, []float64{
		0, 10,
		10, 0,
	})
	mask := mat.NewDense(2, 2, []float64{
		1, 0,
		1, 1,
	})

	type test struct {
		imputed *mat.Dense
		rmse    float64
	}

	tests := map[string]test{
		"perfect": {
			imputed: mat.NewDense(2, 2, []float64{0, 10, 10, 0}),
			rmse:    0,
		},
		"off-by-half-range": {
			imputed: mat.NewDense(2, 2, []float64{0, 5, 10, 0}),
			rmse:    0.5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.rmse, RMSE(truth, tt.imputed, mask), 1e-3)
		})
	}
}

func TestRMSE_NoMissing(t *testing.T) {
	truth := mat.NewDense(1, 1, []float64{1})
	mask := mat.NewDense(1, 1, []float64{1})
	assert.Equal(t, 0.0, RMSE(truth, truth, mask))
}

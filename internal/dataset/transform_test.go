package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTransformer_RoundTrip(t *testing.T) {
	// two continuous columns, one discrete with three categories
	meta := Meta{Name: "test", Discrete: []int{2}}
	data := mat.NewDense(4, 3, []float64{
		1.0, 10, 0,
		2.0, 20, 1,
		3.0, 30, 2,
		4.0, 40, 1,
	})

	tr, err := FitTransformer(data, meta)
	require.NoError(t, err)
	assert.Equal(t, 5, tr.Width())

	encoded := tr.Transform(data)
	_, cols := encoded.Dims()
	assert.Equal(t, 5, cols)
	// continuous bounds map to [-1,1]
	assert.InDelta(t, -1, encoded.At(0, 0), 1e-9)
	assert.InDelta(t, 1, encoded.At(3, 0), 1e-9)
	// one-hot of category 1
	assert.Equal(t, 0.0, encoded.At(1, 2))
	assert.Equal(t, 1.0, encoded.At(1, 3))
	assert.Equal(t, 0.0, encoded.At(1, 4))

	decoded := tr.Inverse(encoded)
	assert.True(t, mat.EqualApprox(data, decoded, 1e-9))
}

func TestTransformer_NaN(t *testing.T) {
	meta := Meta{Name: "test", Discrete: []int{1}}
	data := mat.NewDense(3, 2, []float64{
		1.0, 0,
		math.NaN(), 1,
		3.0, math.NaN(),
	})

	tr, err := FitTransformer(data, meta)
	require.NoError(t, err)

	encoded := tr.Transform(data)
	assert.True(t, math.IsNaN(encoded.At(1, 0)))
	assert.True(t, math.IsNaN(encoded.At(2, 1)))
	assert.True(t, math.IsNaN(encoded.At(2, 2)))
}

func TestTransformer_EmptyColumn(t *testing.T) {
	meta := Meta{Name: "test"}
	data := mat.NewDense(2, 1, []float64{math.NaN(), math.NaN()})

	_, err := FitTransformer(data, meta)
	assert.Error(t, err)
}

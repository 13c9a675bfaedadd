package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestProfile(t *testing.T) {
	meta := Meta{Name: "test", Discrete: []int{1}}
	data := mat.NewDense(5, 2, []float64{
		1, 0,
		2, 1,
		3, 1,
		4, math.NaN(),
		math.NaN(), 0,
	})

	profiles := Profile(data, meta)
	assert.Len(t, profiles, 2)

	cont := profiles[0]
	assert.False(t, cont.Discrete)
	assert.Equal(t, 4, cont.Count)
	assert.Equal(t, 4, cont.Distinct)
	assert.Equal(t, 1.0, cont.Min)
	assert.Equal(t, 4.0, cont.Max)
	assert.InDelta(t, 2.5, cont.Mean, 1e-9)
	assert.Nil(t, cont.Counts)

	disc := profiles[1]
	assert.True(t, disc.Discrete)
	assert.Equal(t, 4, disc.Count)
	assert.Equal(t, 2, disc.Distinct)
	assert.Equal(t, map[float64]int{0: 2, 1: 2}, disc.Counts)
}

func TestProfile_Empty(t *testing.T) {
	data := mat.NewDense(2, 1, []float64{math.NaN(), math.NaN()})

	profiles := Profile(data, Meta{Name: "test"})
	assert.Equal(t, 0, profiles[0].Count)
	assert.Equal(t, 0.0, profiles[0].Mean)
}

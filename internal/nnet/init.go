package nnet

import (
	"math"
	"math/rand"
)

// Initializer fills a rows x cols weight matrix.
type Initializer func(rows, cols int) []float64

// UniformInit draws weights uniformly from [low, high).
func UniformInit(rnd *rand.Rand, low, high float64) Initializer {
	return func(rows, cols int) []float64 {
		w := make([]float64, rows*cols)
		for i := range w {
			w[i] = low + rnd.Float64()*(high-low)
		}
		return w
	}
}

// XavierInit draws weights from a normal distribution with
// standard deviation 1/sqrt(fanIn/2).
func XavierInit(rnd *rand.Rand) Initializer {
	return func(rows, cols int) []float64 {
		stdDev := 1.0 / math.Sqrt(float64(rows)/2.0)
		w := make([]float64, rows*cols)
		for i := range w {
			w[i] = rnd.NormFloat64() * stdDev
		}
		return w
	}
}

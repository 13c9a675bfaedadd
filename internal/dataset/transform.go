package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// column captures the fitted encoding of one source column.
type column struct {
	discrete bool
	min, max float64
	// categories sorted ascending, one-hot order.
	categories []float64
	width      int
}

// Transformer encodes a dataset column by column, scaling continuous
// columns to [-1,1] and one-hot encoding discrete ones.
// The inverse reverts both.
type Transformer struct {
	columns []column
	width   int
}

// FitTransformer learns the per-column encodings, NaN cells excluded.
func FitTransformer(data *mat.Dense, meta Meta) (*Transformer, error) {
	rows, cols := data.Dims()
	t := &Transformer{columns: make([]column, cols)}
	for j := 0; j < cols; j++ {
		c := column{discrete: meta.IsDiscrete(j)}
		if c.discrete {
			seen := make(map[float64]bool)
			for i := 0; i < rows; i++ {
				if v := data.At(i, j); !math.IsNaN(v) {
					seen[v] = true
				}
			}
			if len(seen) == 0 {
				return nil, fmt.Errorf("column %d holds no observed values", j)
			}
			c.categories = make([]float64, 0, len(seen))
			for v := range seen {
				c.categories = append(c.categories, v)
			}
			sort.Float64s(c.categories)
			c.width = len(c.categories)
		} else {
			c.min, c.max = math.MaxFloat64, -math.MaxFloat64
			for i := 0; i < rows; i++ {
				v := data.At(i, j)
				if math.IsNaN(v) {
					continue
				}
				c.min = math.Min(c.min, v)
				c.max = math.Max(c.max, v)
			}
			if c.min > c.max {
				return nil, fmt.Errorf("column %d holds no observed values", j)
			}
			c.width = 1
		}
		t.columns[j] = c
		t.width += c.width
	}
	return t, nil
}

// Width returns the number of encoded columns.
func (t *Transformer) Width() int {
	return t.width
}

// Transform encodes the dataset; NaN cells stay NaN across their encoded width.
func (t *Transformer) Transform(data *mat.Dense) *mat.Dense {
	rows, _ := data.Dims()
	out := mat.NewDense(rows, t.width, nil)
	for i := 0; i < rows; i++ {
		offset := 0
		for j, c := range t.columns {
			v := data.At(i, j)
			if c.discrete {
				for k := range c.categories {
					switch {
					case math.IsNaN(v):
						out.Set(i, offset+k, math.NaN())
					case c.categories[k] == v:
						out.Set(i, offset+k, 1)
					}
				}
			} else {
				out.Set(i, offset, c.scale(v))
			}
			offset += c.width
		}
	}
	return out
}

// Inverse decodes an encoded matrix back to the source columns.
// Discrete columns take the category with the strongest activation.
func (t *Transformer) Inverse(encoded *mat.Dense) *mat.Dense {
	rows, _ := encoded.Dims()
	out := mat.NewDense(rows, len(t.columns), nil)
	for i := 0; i < rows; i++ {
		offset := 0
		for j, c := range t.columns {
			if c.discrete {
				best, bestV := 0, math.Inf(-1)
				for k := 0; k < c.width; k++ {
					if v := encoded.At(i, offset+k); v > bestV {
						best, bestV = k, v
					}
				}
				out.Set(i, j, c.categories[best])
			} else {
				out.Set(i, j, c.unscale(encoded.At(i, offset)))
			}
			offset += c.width
		}
	}
	return out
}

func (c column) scale(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	if c.max == c.min {
		return 0
	}
	return 2*(v-c.min)/(c.max-c.min) - 1
}

func (c column) unscale(v float64) float64 {
	if c.max == c.min {
		return c.min
	}
	return (v+1)/2*(c.max-c.min) + c.min
}

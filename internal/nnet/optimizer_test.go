package nnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewOptimizer(t *testing.T) {
	type test struct {
		name string
		err  bool
	}

	tests := map[string]test{
		"gda":              {name: GDA},
		"rms-prop":         {name: RMSProp},
		"adam":             {name: Adam},
		"case-insensitive": {name: "adam"},
		"upper":            {name: "GDA"},
		"unknown":          {name: "momentum", err: true},
		"empty":            {name: "", err: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opt, err := NewOptimizer(tt.name, 0.001, DefaultHyper())
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, opt)
		})
	}
}

func TestGDA_Step(t *testing.T) {
	opt, err := NewOptimizer(GDA, 0.1, DefaultHyper())
	require.NoError(t, err)

	p := mat.NewDense(1, 2, []float64{1.0, -2.0})
	g := mat.NewDense(1, 2, []float64{0.5, -0.5})
	opt.Step([]*mat.Dense{p}, []*mat.Dense{g})

	assert.InDelta(t, 0.95, p.At(0, 0), 1e-9)
	assert.InDelta(t, -1.95, p.At(0, 1), 1e-9)
}

// TestOptimizer_Convergence minimises f(w) = (w - 3)^2 with each optimizer.
func TestOptimizer_Convergence(t *testing.T) {
	tests := map[string]struct {
		name  string
		rate  float64
		steps int
	}{
		"gda":      {name: GDA, rate: 0.1, steps: 200},
		"rms-prop": {name: RMSProp, rate: 0.01, steps: 2000},
		"adam":     {name: Adam, rate: 0.01, steps: 2000},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opt, err := NewOptimizer(tt.name, tt.rate, DefaultHyper())
			require.NoError(t, err)

			p := mat.NewDense(1, 1, []float64{-5})
			g := mat.NewDense(1, 1, nil)
			for i := 0; i < tt.steps; i++ {
				g.Set(0, 0, 2*(p.At(0, 0)-3))
				opt.Step([]*mat.Dense{p}, []*mat.Dense{g})
			}
			assert.InDelta(t, 3.0, p.At(0, 0), 0.05)
		})
	}
}

package nnet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestActivation(t *testing.T) {
	type test struct {
		act Activation
		z   float64
		out float64
	}

	tests := map[string]test{
		"identity":     {act: Identity, z: 1.5, out: 1.5},
		"relu-pos":     {act: ReLU, z: 2.0, out: 2.0},
		"relu-neg":     {act: ReLU, z: -2.0, out: 0.0},
		"sigmoid-zero": {act: Sigmoid, z: 0.0, out: 0.5},
		"tanh-zero":    {act: Tanh, z: 0.0, out: 0.0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.out, tt.act.apply(tt.z), 1e-9)
		})
	}
}

func TestDense_Forward(t *testing.T) {
	l := NewDense(2, 1, Identity, func(rows, cols int) []float64 {
		return []float64{1, 2}
	})
	l.B.Set(0, 0, 0.5)

	out := l.Forward(mat.NewDense(2, 2, []float64{
		1, 1,
		2, 3,
	}))

	assert.InDelta(t, 3.5, out.At(0, 0), 1e-9)
	assert.InDelta(t, 8.5, out.At(1, 0), 1e-9)
}

// TestNetwork_Backward checks the analytic gradients against central
// finite differences on a squared error loss.
func TestNetwork_Backward(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	net := NewNetwork(
		NewDense(3, 4, Sigmoid, XavierInit(rnd)),
		NewDense(4, 2, Tanh, XavierInit(rnd)),
	)

	x := mat.NewDense(5, 3, nil)
	target := mat.NewDense(5, 2, nil)
	for i := 0; i < 5; i++ {
		for j := 0; j < 3; j++ {
			x.Set(i, j, rnd.NormFloat64())
		}
		for j := 0; j < 2; j++ {
			target.Set(i, j, rnd.Float64()*2-1)
		}
	}

	loss := func() float64 {
		out := net.Forward(x)
		sum := 0.0
		rows, cols := out.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				d := out.At(i, j) - target.At(i, j)
				sum += 0.5 * d * d
			}
		}
		return sum
	}

	out := net.Forward(x)
	dOut := mat.NewDense(5, 2, nil)
	dOut.Sub(out, target)
	net.Backward(dOut)

	const h = 1e-5
	params, grads := net.Params(), net.Grads()
	for p, param := range params {
		rows, cols := param.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				w := param.At(i, j)
				param.Set(i, j, w+h)
				up := loss()
				param.Set(i, j, w-h)
				down := loss()
				param.Set(i, j, w)

				numeric := (up - down) / (2 * h)
				assert.InDelta(t, numeric, grads[p].At(i, j), 1e-5)
			}
		}
	}
}

// TestNetwork_BackwardInput checks the gradient with respect to the input,
// which the adversarial training relies on.
func TestNetwork_BackwardInput(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	net := NewNetwork(
		NewDense(2, 3, ReLU, XavierInit(rnd)),
		NewDense(3, 1, Sigmoid, XavierInit(rnd)),
	)

	x := mat.NewDense(1, 2, []float64{0.3, -0.7})

	out := net.Forward(x)
	dOut := mat.NewDense(1, 1, []float64{1})
	dX := net.Backward(dOut)

	const h = 1e-5
	for j := 0; j < 2; j++ {
		v := x.At(0, j)
		x.Set(0, j, v+h)
		up := net.Forward(x).At(0, 0)
		x.Set(0, j, v-h)
		down := net.Forward(x).At(0, 0)
		x.Set(0, j, v)

		numeric := (up - down) / (2 * h)
		assert.InDelta(t, numeric, dX.At(0, j), 1e-5)
	}
	assert.False(t, math.IsNaN(out.At(0, 0)))
}

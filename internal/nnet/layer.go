package nnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activation is an elementwise layer activation.
type Activation int

const (
	Identity Activation = iota
	ReLU
	Sigmoid
	Tanh
)

func (a Activation) apply(z float64) float64 {
	switch a {
	case ReLU:
		return math.Max(0, z)
	case Sigmoid:
		return 1.0 / (1.0 + math.Exp(-z))
	case Tanh:
		return math.Tanh(z)
	default:
		return z
	}
}

// deriv computes the activation derivative from the activated output.
func (a Activation) deriv(out float64) float64 {
	switch a {
	case ReLU:
		if out > 0 {
			return 1
		}
		return 0
	case Sigmoid:
		return out * (1 - out)
	case Tanh:
		return 1 - out*out
	default:
		return 1
	}
}

// Dense is a fully connected layer with cached state for backprop.
type Dense struct {
	W   *mat.Dense // in x out
	B   *mat.Dense // 1 x out
	Act Activation

	in  *mat.Dense
	out *mat.Dense
	dW  *mat.Dense
	dB  *mat.Dense
}

// NewDense creates a layer with the given initialiser for the weights.
// Biases start at zero.
func NewDense(in, out int, act Activation, init Initializer) *Dense {
	return &Dense{
		W:   mat.NewDense(in, out, init(in, out)),
		B:   mat.NewDense(1, out, nil),
		Act: act,
		dW:  mat.NewDense(in, out, nil),
		dB:  mat.NewDense(1, out, nil),
	}
}

// Forward computes the activated output for a batch and caches the state
// needed by Backward.
func (l *Dense) Forward(x *mat.Dense) *mat.Dense {
	rows, _ := x.Dims()
	_, out := l.W.Dims()

	z := mat.NewDense(rows, out, nil)
	z.Mul(x, l.W)
	for i := 0; i < rows; i++ {
		for j := 0; j < out; j++ {
			z.Set(i, j, l.Act.apply(z.At(i, j)+l.B.At(0, j)))
		}
	}
	l.in = x
	l.out = z
	return z
}

// Backward takes the gradient with respect to the layer output,
// accumulates the parameter gradients and returns the gradient with
// respect to the layer input.
func (l *Dense) Backward(dOut *mat.Dense) *mat.Dense {
	rows, out := dOut.Dims()
	in, _ := l.W.Dims()

	dZ := mat.NewDense(rows, out, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < out; j++ {
			dZ.Set(i, j, dOut.At(i, j)*l.Act.deriv(l.out.At(i, j)))
		}
	}

	l.dW.Mul(l.in.T(), dZ)
	for j := 0; j < out; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += dZ.At(i, j)
		}
		l.dB.Set(0, j, sum)
	}

	dX := mat.NewDense(rows, in, nil)
	dX.Mul(dZ, l.W.T())
	return dX
}

// Network chains dense layers.
type Network struct {
	Layers []*Dense
}

// NewNetwork creates a network from the given layers.
func NewNetwork(layers ...*Dense) *Network {
	return &Network{Layers: layers}
}

// Forward runs the batch through all layers.
func (n *Network) Forward(x *mat.Dense) *mat.Dense {
	for _, l := range n.Layers {
		x = l.Forward(x)
	}
	return x
}

// Backward propagates the output gradient back through all layers and
// returns the gradient with respect to the network input.
func (n *Network) Backward(dOut *mat.Dense) *mat.Dense {
	for i := len(n.Layers) - 1; i >= 0; i-- {
		dOut = n.Layers[i].Backward(dOut)
	}
	return dOut
}

// Params returns all trainable parameters, layer by layer.
func (n *Network) Params() []*mat.Dense {
	params := make([]*mat.Dense, 0, 2*len(n.Layers))
	for _, l := range n.Layers {
		params = append(params, l.W, l.B)
	}
	return params
}

// Grads returns the gradients matching Params.
func (n *Network) Grads() []*mat.Dense {
	grads := make([]*mat.Dense, 0, 2*len(n.Layers))
	for _, l := range n.Layers {
		grads = append(grads, l.dW, l.dB)
	}
	return grads
}

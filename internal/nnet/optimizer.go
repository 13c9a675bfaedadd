package nnet

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Optimizer names as they appear on the command line.
const (
	GDA     = "GDA"
	RMSProp = "RMSProp"
	Adam    = "Adam"
)

// Hyper bundles the optimizer hyper-parameters beyond the learning rate.
type Hyper struct {
	Beta1    float64
	Beta2    float64
	Decay    float64
	Momentum float64
	Epsilon  float64
}

// DefaultHyper returns the hyper-parameters used in the study.
func DefaultHyper() Hyper {
	return Hyper{
		Beta1:    0.900,
		Beta2:    0.999,
		Decay:    0.900,
		Momentum: 0.000,
		Epsilon:  1e-8,
	}
}

// Optimizer applies one update step to a parameter set.
// State is allocated lazily and keyed by parameter index, so each
// network needs its own optimizer instance.
type Optimizer interface {
	Step(params, grads []*mat.Dense)
}

// NewOptimizer creates the optimizer for the given name.
// Names are matched case-insensitively.
func NewOptimizer(name string, learnRate float64, h Hyper) (Optimizer, error) {
	switch strings.ToLower(name) {
	case strings.ToLower(GDA):
		return &gda{learnRate: learnRate}, nil
	case strings.ToLower(RMSProp):
		return &rmsProp{learnRate: learnRate, hyper: h}, nil
	case strings.ToLower(Adam):
		return &adam{learnRate: learnRate, hyper: h}, nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q, expected one of [%s %s %s]", name, GDA, RMSProp, Adam)
	}
}

type gda struct {
	learnRate float64
}

func (o *gda) Step(params, grads []*mat.Dense) {
	for i, p := range params {
		update(p, grads[i], func(w, g, _, _ float64) (float64, float64, float64) {
			return w - o.learnRate*g, 0, 0
		}, nil, nil)
	}
}

type rmsProp struct {
	learnRate float64
	hyper     Hyper
	cache     []*mat.Dense
	velocity  []*mat.Dense
}

func (o *rmsProp) Step(params, grads []*mat.Dense) {
	if o.cache == nil {
		o.cache = zerosLike(params)
		o.velocity = zerosLike(params)
	}
	for i, p := range params {
		update(p, grads[i], func(w, g, c, v float64) (float64, float64, float64) {
			c = o.hyper.Decay*c + (1-o.hyper.Decay)*g*g
			v = o.hyper.Momentum*v + o.learnRate*g/math.Sqrt(c+o.hyper.Epsilon)
			return w - v, c, v
		}, o.cache[i], o.velocity[i])
	}
}

type adam struct {
	learnRate float64
	hyper     Hyper
	moment    []*mat.Dense
	variance  []*mat.Dense
	t         int
}

func (o *adam) Step(params, grads []*mat.Dense) {
	if o.moment == nil {
		o.moment = zerosLike(params)
		o.variance = zerosLike(params)
	}
	o.t++
	c1 := 1 - math.Pow(o.hyper.Beta1, float64(o.t))
	c2 := 1 - math.Pow(o.hyper.Beta2, float64(o.t))
	for i, p := range params {
		update(p, grads[i], func(w, g, m, v float64) (float64, float64, float64) {
			m = o.hyper.Beta1*m + (1-o.hyper.Beta1)*g
			v = o.hyper.Beta2*v + (1-o.hyper.Beta2)*g*g
			mHat := m / c1
			vHat := v / c2
			return w - o.learnRate*mHat/(math.Sqrt(vHat)+o.hyper.Epsilon), m, v
		}, o.moment[i], o.variance[i])
	}
}

// update applies f to every weight, threading two state cells through.
func update(p, g *mat.Dense, f func(w, g, s1, s2 float64) (float64, float64, float64), s1, s2 *mat.Dense) {
	rows, cols := p.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var a, b float64
			if s1 != nil {
				a = s1.At(i, j)
			}
			if s2 != nil {
				b = s2.At(i, j)
			}
			w, na, nb := f(p.At(i, j), g.At(i, j), a, b)
			p.Set(i, j, w)
			if s1 != nil {
				s1.Set(i, j, na)
			}
			if s2 != nil {
				s2.Set(i, j, nb)
			}
		}
	}
}

func zerosLike(params []*mat.Dense) []*mat.Dense {
	out := make([]*mat.Dense, len(params))
	for i, p := range params {
		rows, cols := p.Dims()
		out[i] = mat.NewDense(rows, cols, nil)
	}
	return out
}

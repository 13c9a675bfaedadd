package imputation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/dtneves/ICCS-2021/internal/nnet"
)

// sgainImputer implements SGAIN, the slim two layer GAIN variant of the
// study: no hint mechanism, [-1,1] scaling and a configurable optimizer.
type sgainImputer struct{}

func (s sgainImputer) Impute(data *mat.Dense, p Params) (*mat.Dense, error) {
	return runSlim(data, p, slimConfig{
		criticAct: nnet.Tanh,
		nCritic:   1,
		iterDiv:   1,
	})
}

// wsgainImputer implements the Wasserstein variants. With clipping it is
// WSGAIN-CP, with a gradient penalty it is WSGAIN-GP. Both use a linear
// critic trained five times per generator step, with the iteration
// budget divided by three to keep the total step count comparable.
type wsgainImputer struct {
	clip    bool
	penalty bool
}

func (w wsgainImputer) Impute(data *mat.Dense, p Params) (*mat.Dense, error) {
	cfg := slimConfig{
		criticAct: nnet.Identity,
		nCritic:   5,
		iterDiv:   3,
	}
	if w.clip {
		cfg.clip = 0.01
	}
	if w.penalty {
		cfg.lambda = 10
	}
	return runSlim(data, p, cfg)
}

type slimConfig struct {
	criticAct nnet.Activation
	nCritic   int
	iterDiv   int
	// clip > 0 bounds the critic weights after each critic step.
	clip float64
	// lambda > 0 adds the gradient penalty to the critic loss.
	lambda float64
}

func runSlim(data *mat.Dense, p Params, cfg slimConfig) (*mat.Dense, error) {
	rows, dim := data.Dims()
	if rows == 0 || dim == 0 {
		return nil, fmt.Errorf("empty data matrix")
	}

	mask := maskOf(data)
	scaler := FitScaler(data, -1, 1)
	x := fillZero(scaler.Transform(data))

	batch := p.BatchSize
	if batch <= 0 {
		batch = int(math.Ceil(math.Sqrt(float64(rows))))
	}
	if batch > rows {
		batch = rows
	}

	uniform := nnet.UniformInit(p.Rand, -0.01, 0.01)
	gen := nnet.NewNetwork(
		nnet.NewDense(2*dim, dim, nnet.ReLU, uniform),
		nnet.NewDense(dim, dim, nnet.Tanh, uniform),
	)
	critic := nnet.NewNetwork(
		nnet.NewDense(dim, dim, nnet.ReLU, uniform),
		nnet.NewDense(dim, dim, cfg.criticAct, uniform),
	)

	genOpt, err := nnet.NewOptimizer(p.Optimizer, p.LearnRate, p.Hyper)
	if err != nil {
		return nil, err
	}
	criticOpt, err := nnet.NewOptimizer(p.Optimizer, p.LearnRate, p.Hyper)
	if err != nil {
		return nil, err
	}

	iterations := p.Iterations
	if cfg.iterDiv > 1 {
		iterations = int(math.Ceil(float64(iterations) / float64(cfg.iterDiv)))
	}

	n := float64(batch * dim)
	for it := 0; it < iterations; it++ {
		var xMb, mMb, zMb *mat.Dense

		criticLoss := 0.0
		for c := 0; c < cfg.nCritic; c++ {
			idx := sampleBatch(p.Rand, rows, batch)
			xMb = pick(x, idx)
			mMb = pick(mask, idx)
			zMb = combine(mMb, xMb, uniformMat(p.Rand, batch, dim, -0.01, 0.01))

			criticLoss = criticStep(critic, criticOpt, gen, xMb, mMb, zMb, cfg, p, n)
		}

		// generator step on the last critic batch
		gSample := gen.Forward(hstack(zMb, mMb))
		dFake := critic.Forward(gSample)

		gGrad := mat.NewDense(batch, dim, nil)
		for i := 0; i < batch; i++ {
			for j := 0; j < dim; j++ {
				gGrad.Set(i, j, -(1-mMb.At(i, j))/n)
			}
		}
		dGen := critic.Backward(gGrad)

		sumM := sumMasked(mMb)
		if sumM == 0 {
			sumM = 1
		}
		mseLoss := 0.0
		for i := 0; i < batch; i++ {
			for j := 0; j < dim; j++ {
				m := mMb.At(i, j)
				diff := gSample.At(i, j) - xMb.At(i, j)
				mseLoss += m * diff * diff / sumM
				dGen.Set(i, j, dGen.At(i, j)+2*p.Alpha*m*diff/sumM)
			}
		}
		gen.Backward(dGen)
		genOpt.Step(gen.Params(), gen.Grads())

		if p.Verbose && it%progressEvery(iterations) == 0 {
			log.Debug().Int("iteration", it).
				Float64("critic_loss", criticLoss).
				Float64("mse_loss", mseLoss).
				Float64("adv", mat.Sum(dFake)/n).
				Msg("sgain training")
		}
	}

	zAll := combine(mask, x, uniformMat(p.Rand, rows, dim, -0.01, 0.01))
	imputed := combine(mask, x, gen.Forward(hstack(zAll, mask)))
	return Round(scaler.Inverse(imputed), data), nil
}

// criticStep performs one critic update and returns the critic loss.
// The critic maximises mean(M*D(x)) - mean((1-M)*D(G(z))), minus the
// gradient penalty when configured.
func criticStep(critic *nnet.Network, opt nnet.Optimizer, gen *nnet.Network,
	xMb, mMb, zMb *mat.Dense, cfg slimConfig, p Params, n float64) float64 {

	batch, dim := xMb.Dims()

	gSample := gen.Forward(hstack(zMb, mMb))

	// real pass
	dReal := critic.Forward(xMb)
	realGrad := mat.NewDense(batch, dim, nil)
	loss := 0.0
	for i := 0; i < batch; i++ {
		for j := 0; j < dim; j++ {
			m := mMb.At(i, j)
			loss -= m * dReal.At(i, j) / n
			realGrad.Set(i, j, -m/n)
		}
	}
	critic.Backward(realGrad)
	realGrads := copyGrads(critic.Grads())

	// fake pass
	dFake := critic.Forward(gSample)
	fakeGrad := mat.NewDense(batch, dim, nil)
	for i := 0; i < batch; i++ {
		for j := 0; j < dim; j++ {
			m := mMb.At(i, j)
			loss += (1 - m) * dFake.At(i, j) / n
			fakeGrad.Set(i, j, (1-m)/n)
		}
	}
	critic.Backward(fakeGrad)
	addInto(critic.Grads(), realGrads)

	if cfg.lambda > 0 {
		pen := addPenaltyGrads(critic, xMb, mMb, gSample, cfg.lambda, p)
		loss += pen
	}

	opt.Step(critic.Params(), critic.Grads())

	if cfg.clip > 0 {
		clipParams(critic.Params(), cfg.clip)
	}
	return loss
}

// addPenaltyGrads adds the WGAN-GP gradient penalty contribution to the
// critic gradients and returns the penalty value. The penalty gradient
// is analytic for the two layer critic, with the ReLU pattern held
// constant.
func addPenaltyGrads(critic *nnet.Network, xMb, mMb, gSample *mat.Dense, lambda float64, p Params) float64 {
	batch, dim := xMb.Dims()
	w1, b1 := critic.Layers[0].W, critic.Layers[0].B
	w2 := critic.Layers[1].W
	eps := p.Hyper.Epsilon

	// interpolate the observed and generated parts elementwise
	xInter := mat.NewDense(batch, dim, nil)
	for i := 0; i < batch; i++ {
		for j := 0; j < dim; j++ {
			e := p.Rand.Float64()
			m := mMb.At(i, j)
			xInter.Set(i, j, e*m*xMb.At(i, j)+(1-e)*(1-m)*gSample.At(i, j))
		}
	}

	// pre-activations of the hidden layer on the interpolation
	z1 := mat.NewDense(batch, dim, nil)
	z1.Mul(xInter, w1)
	active := mat.NewDense(batch, dim, nil)
	for i := 0; i < batch; i++ {
		for j := 0; j < dim; j++ {
			if z1.At(i, j)+b1.At(0, j) > 0 {
				active.Set(i, j, 1)
			}
		}
	}

	// s holds the output layer row sums, r the active contributions
	s := make([]float64, dim)
	for k := 0; k < dim; k++ {
		for j := 0; j < dim; j++ {
			s[k] += w2.At(k, j)
		}
	}
	r := mat.NewDense(batch, dim, nil)
	for i := 0; i < batch; i++ {
		for k := 0; k < dim; k++ {
			r.Set(i, k, active.At(i, k)*s[k])
		}
	}

	// input gradient of the critic sum, its norms and the penalty
	grad := mat.NewDense(batch, dim, nil)
	grad.Mul(r, w1.T())
	pen := 0.0
	dGrad := mat.NewDense(batch, dim, nil)
	for i := 0; i < batch; i++ {
		sq := eps
		for j := 0; j < dim; j++ {
			sq += grad.At(i, j) * grad.At(i, j)
		}
		norm := math.Sqrt(sq)
		pen += lambda * (norm - 1) * (norm - 1) / float64(batch)
		c := 2 * lambda * (norm - 1) / norm / float64(batch)
		for j := 0; j < dim; j++ {
			dGrad.Set(i, j, c*grad.At(i, j))
		}
	}

	// fold the penalty into the layer gradients
	dW1 := mat.NewDense(dim, dim, nil)
	dW1.Mul(dGrad.T(), r)

	t := mat.NewDense(batch, dim, nil)
	t.Mul(dGrad, w1)
	dS := make([]float64, dim)
	for i := 0; i < batch; i++ {
		for k := 0; k < dim; k++ {
			dS[k] += t.At(i, k) * active.At(i, k)
		}
	}
	dW2 := mat.NewDense(dim, dim, nil)
	for k := 0; k < dim; k++ {
		for j := 0; j < dim; j++ {
			dW2.Set(k, j, dS[k])
		}
	}

	grads := critic.Grads()
	grads[0].Add(grads[0], dW1)
	grads[2].Add(grads[2], dW2)
	return pen
}

func clipParams(params []*mat.Dense, clip float64) {
	for _, p := range params {
		rows, cols := p.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				p.Set(i, j, math.Max(-clip, math.Min(clip, p.At(i, j))))
			}
		}
	}
}

package imputation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/dtneves/ICCS-2021/internal/nnet"
)

const logEps = 1e-8

// gainImputer implements GAIN, the generative adversarial imputation
// network of Yoon et al. (ICML 2018): three layer generator and
// discriminator, hint mechanism and a reconstruction term on the
// observed cells.
type gainImputer struct{}

func (g gainImputer) Impute(data *mat.Dense, p Params) (*mat.Dense, error) {
	rows, dim := data.Dims()
	if rows == 0 || dim == 0 {
		return nil, fmt.Errorf("empty data matrix")
	}

	mask := maskOf(data)
	scaler := FitScaler(data, 0, 1)
	x := fillZero(scaler.Transform(data))

	batch := p.BatchSize
	if batch <= 0 {
		batch = 128
	}
	if batch > rows {
		batch = rows
	}

	xavier := nnet.XavierInit(p.Rand)
	gen := nnet.NewNetwork(
		nnet.NewDense(2*dim, dim, nnet.ReLU, xavier),
		nnet.NewDense(dim, dim, nnet.ReLU, xavier),
		nnet.NewDense(dim, dim, nnet.Sigmoid, xavier),
	)
	disc := nnet.NewNetwork(
		nnet.NewDense(2*dim, dim, nnet.ReLU, xavier),
		nnet.NewDense(dim, dim, nnet.ReLU, xavier),
		nnet.NewDense(dim, dim, nnet.Sigmoid, xavier),
	)

	// GAIN trains both players with Adam, as in the reference code.
	genOpt, err := nnet.NewOptimizer(nnet.Adam, p.LearnRate, p.Hyper)
	if err != nil {
		return nil, err
	}
	discOpt, err := nnet.NewOptimizer(nnet.Adam, p.LearnRate, p.Hyper)
	if err != nil {
		return nil, err
	}

	n := float64(batch * dim)
	for it := 0; it < p.Iterations; it++ {
		idx := sampleBatch(p.Rand, rows, batch)
		xMb := pick(x, idx)
		mMb := pick(mask, idx)
		zMb := uniformMat(p.Rand, batch, dim, 0, 0.01)
		hMb := mulElem(mMb, bernoulliMat(p.Rand, batch, dim, p.HintRate))
		xMb = combine(mMb, xMb, zMb)

		// discriminator step
		gSample := gen.Forward(hstack(xMb, mMb))
		hatX := combine(mMb, xMb, gSample)
		dProb := disc.Forward(hstack(hatX, hMb))

		dGrad := mat.NewDense(batch, dim, nil)
		dLoss := 0.0
		for i := 0; i < batch; i++ {
			for j := 0; j < dim; j++ {
				m := mMb.At(i, j)
				d := dProb.At(i, j)
				dLoss -= (m*math.Log(d+logEps) + (1-m)*math.Log(1-d+logEps)) / n
				dGrad.Set(i, j, (-m/(d+logEps)+(1-m)/(1-d+logEps))/n)
			}
		}
		disc.Backward(dGrad)
		discOpt.Step(disc.Params(), disc.Grads())

		// generator step
		gSample = gen.Forward(hstack(xMb, mMb))
		hatX = combine(mMb, xMb, gSample)
		dProb = disc.Forward(hstack(hatX, hMb))

		gGrad := mat.NewDense(batch, dim, nil)
		for i := 0; i < batch; i++ {
			for j := 0; j < dim; j++ {
				m := mMb.At(i, j)
				gGrad.Set(i, j, -(1-m)/(dProb.At(i, j)+logEps)/n)
			}
		}
		dHat := slice(disc.Backward(gGrad), 0, dim)

		sumM := sumMasked(mMb)
		if sumM == 0 {
			sumM = 1
		}
		dGen := mat.NewDense(batch, dim, nil)
		mseLoss := 0.0
		for i := 0; i < batch; i++ {
			for j := 0; j < dim; j++ {
				m := mMb.At(i, j)
				diff := gSample.At(i, j) - xMb.At(i, j)
				mseLoss += m * diff * diff / sumM
				dGen.Set(i, j, (1-m)*dHat.At(i, j)+2*p.Alpha*m*diff/sumM)
			}
		}
		gen.Backward(dGen)
		genOpt.Step(gen.Params(), gen.Grads())

		if p.Verbose && it%progressEvery(p.Iterations) == 0 {
			log.Debug().Int("iteration", it).
				Float64("d_loss", dLoss).
				Float64("mse_loss", mseLoss).
				Msg("gain training")
		}
	}

	// impute the whole matrix through the trained generator
	z := uniformMat(p.Rand, rows, dim, 0, 0.01)
	all := combine(mask, x, z)
	imputed := combine(mask, x, gen.Forward(hstack(all, mask)))
	return Round(scaler.Inverse(imputed), data), nil
}

func mulElem(a, b *mat.Dense) *mat.Dense {
	rows, cols := a.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.MulElem(a, b)
	return out
}

func progressEvery(iterations int) int {
	every := iterations / 10
	if every == 0 {
		every = 1
	}
	return every
}

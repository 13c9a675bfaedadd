package imputation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/dtneves/ICCS-2021/internal/dataset"
	"github.com/dtneves/ICCS-2021/internal/nnet"
)

// ctganImputer is the CTGAN style baseline: a plain tabular GAN trained
// on the complete rows over the transformer encoding (continuous
// columns scaled to [-1,1], discrete columns one-hot). An incomplete
// row is imputed by sampling candidates from the generator and keeping
// the candidate closest to the row on its observed cells.
type ctganImputer struct{}

// candidates sampled per incomplete row at imputation time.
const ctganCandidates = 16

func (c ctganImputer) Impute(data *mat.Dense, p Params) (*mat.Dense, error) {
	rows, dim := data.Dims()
	if rows == 0 || dim == 0 {
		return nil, fmt.Errorf("empty data matrix")
	}

	complete, incomplete := splitRows(data)
	if len(complete) == 0 {
		return nil, fmt.Errorf("ctgan needs at least one complete observation to train on")
	}

	transformer, err := dataset.FitTransformer(data, p.Meta)
	if err != nil {
		return nil, fmt.Errorf("could not fit the column transformer: %w", err)
	}
	encoded := transformer.Transform(data)
	train := pick(encoded, complete)
	width := transformer.Width()

	batch := p.BatchSize
	if batch <= 0 {
		batch = int(math.Ceil(math.Sqrt(float64(len(complete)))))
	}
	if batch > len(complete) {
		batch = len(complete)
	}

	xavier := nnet.XavierInit(p.Rand)
	gen := nnet.NewNetwork(
		nnet.NewDense(width, width, nnet.ReLU, xavier),
		nnet.NewDense(width, width, nnet.Tanh, xavier),
	)
	disc := nnet.NewNetwork(
		nnet.NewDense(width, width, nnet.ReLU, xavier),
		nnet.NewDense(width, 1, nnet.Sigmoid, xavier),
	)

	genOpt, err := nnet.NewOptimizer(p.Optimizer, p.LearnRate, p.Hyper)
	if err != nil {
		return nil, err
	}
	discOpt, err := nnet.NewOptimizer(p.Optimizer, p.LearnRate, p.Hyper)
	if err != nil {
		return nil, err
	}

	for it := 0; it < p.Iterations; it++ {
		idx := sampleBatch(p.Rand, len(complete), batch)
		real := pick(train, idx)
		noise := uniformMat(p.Rand, batch, width, -1, 1)

		// discriminator step: real and generated passes
		fake := gen.Forward(noise)

		dLoss := 0.0
		probReal := disc.Forward(real)
		realGrad := mat.NewDense(batch, 1, nil)
		for i := 0; i < batch; i++ {
			d := probReal.At(i, 0)
			dLoss -= math.Log(d+logEps) / float64(batch)
			realGrad.Set(i, 0, -1/(d+logEps)/float64(batch))
		}
		disc.Backward(realGrad)
		realGrads := copyGrads(disc.Grads())

		probFake := disc.Forward(fake)
		fakeGrad := mat.NewDense(batch, 1, nil)
		for i := 0; i < batch; i++ {
			d := probFake.At(i, 0)
			dLoss -= math.Log(1-d+logEps) / float64(batch)
			fakeGrad.Set(i, 0, 1/(1-d+logEps)/float64(batch))
		}
		disc.Backward(fakeGrad)
		addInto(disc.Grads(), realGrads)
		discOpt.Step(disc.Params(), disc.Grads())

		// generator step
		fake = gen.Forward(noise)
		probFake = disc.Forward(fake)
		gGrad := mat.NewDense(batch, 1, nil)
		gLoss := 0.0
		for i := 0; i < batch; i++ {
			d := probFake.At(i, 0)
			gLoss -= math.Log(d+logEps) / float64(batch)
			gGrad.Set(i, 0, -1/(d+logEps)/float64(batch))
		}
		dFake := disc.Backward(gGrad)
		gen.Backward(dFake)
		genOpt.Step(gen.Params(), gen.Grads())

		if p.Verbose && it%progressEvery(p.Iterations) == 0 {
			log.Debug().Int("iteration", it).
				Float64("d_loss", dLoss).
				Float64("g_loss", gLoss).
				Msg("ctgan training")
		}
	}

	// impute each incomplete row from the closest generated candidate
	imputed := mat.DenseCopyOf(data)
	for _, row := range incomplete {
		noise := uniformMat(p.Rand, ctganCandidates, width, -1, 1)
		candidates := gen.Forward(noise)

		best, bestDist := 0, math.MaxFloat64
		for k := 0; k < ctganCandidates; k++ {
			dist := 0.0
			for j := 0; j < width; j++ {
				v := encoded.At(row, j)
				if math.IsNaN(v) {
					continue
				}
				diff := v - candidates.At(k, j)
				dist += diff * diff
			}
			if dist < bestDist {
				best, bestDist = k, dist
			}
		}

		decoded := transformer.Inverse(pick(candidates, []int{best}))
		for j := 0; j < dim; j++ {
			if math.IsNaN(data.At(row, j)) {
				imputed.Set(row, j, decoded.At(0, j))
			}
		}
	}
	return Round(imputed, data), nil
}

// splitRows partitions row indices into complete and incomplete ones.
func splitRows(data *mat.Dense) (complete, incomplete []int) {
	rows, cols := data.Dims()
	for i := 0; i < rows; i++ {
		missing := false
		for j := 0; j < cols; j++ {
			if math.IsNaN(data.At(i, j)) {
				missing = true
				break
			}
		}
		if missing {
			incomplete = append(incomplete, i)
		} else {
			complete = append(complete, i)
		}
	}
	return complete, incomplete
}

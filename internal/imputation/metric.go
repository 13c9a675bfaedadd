package imputation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RMSE scores an imputation against the ground truth on the amputed
// cells only, in [0,1] normalised space so that datasets with different
// value ranges stay comparable.
// Mask 1 means observed; a benchmark without missing cells scores 0.
func RMSE(truth, imputed, mask *mat.Dense) float64 {
	scaler := FitScaler(truth, 0, 1)
	truthNorm := scaler.Transform(truth)
	imputedNorm := scaler.Transform(imputed)

	rows, cols := truth.Dims()
	nominator, denominator := 0.0, 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if mask.At(i, j) == 1 {
				continue
			}
			diff := truthNorm.At(i, j) - imputedNorm.At(i, j)
			nominator += diff * diff
			denominator++
		}
	}
	if denominator == 0 {
		return 0
	}
	return math.Sqrt(nominator / denominator)
}

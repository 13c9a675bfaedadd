package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ColumnProfile summarises the values distribution of one column.
type ColumnProfile struct {
	Column   int     `json:"column"`
	Discrete bool    `json:"discrete"`
	Count    int     `json:"count"`
	Distinct int     `json:"distinct"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StDev    float64 `json:"st_dev"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	// Counts holds the value counts of a discrete column.
	Counts map[float64]int `json:"counts,omitempty"`
}

// Profile computes a per-column summary of the dataset, NaN cells excluded.
func Profile(data *mat.Dense, meta Meta) []ColumnProfile {
	_, cols := data.Dims()
	profiles := make([]ColumnProfile, cols)
	for j := 0; j < cols; j++ {
		profiles[j] = profileColumn(data, j, meta.IsDiscrete(j))
	}
	return profiles
}

func profileColumn(data *mat.Dense, col int, discrete bool) ColumnProfile {
	rows, _ := data.Dims()
	values := make([]float64, 0, rows)
	counts := make(map[float64]int)
	for i := 0; i < rows; i++ {
		v := data.At(i, col)
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
		counts[v]++
	}

	profile := ColumnProfile{
		Column:   col,
		Discrete: discrete,
		Count:    len(values),
		Distinct: len(counts),
	}
	if len(values) == 0 {
		return profile
	}

	sort.Float64s(values)
	profile.Min = values[0]
	profile.Max = values[len(values)-1]
	profile.Mean = stat.Mean(values, nil)
	profile.Median = stat.Quantile(0.5, stat.Empirical, values, nil)
	profile.StDev = stat.StdDev(values, nil)
	profile.Skewness = stat.Skew(values, nil)
	profile.Kurtosis = stat.ExKurtosis(values, nil)
	if discrete {
		profile.Counts = counts
	}
	return profile
}

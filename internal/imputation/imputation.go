// Package imputation holds the GAN based missing data imputation
// algorithms of the study: GAIN, the slim SGAIN variant, the two
// Wasserstein variants WSGAIN-CP and WSGAIN-GP, and a CTGAN style
// baseline. All of them implement a single capability, Impute, which
// fills the NaN cells of a matrix.
package imputation

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/dtneves/ICCS-2021/internal/dataset"
	"github.com/dtneves/ICCS-2021/internal/nnet"
)

// Canonical algorithm names.
const (
	GAIN     = "GAIN"
	SGAIN    = "SGAIN"
	WSGAINCP = "WSGAIN-CP"
	WSGAINGP = "WSGAIN-GP"
	CTGAN    = "CTGAN"
)

// Params carries the training parameters of one imputation run.
type Params struct {
	Optimizer  string
	LearnRate  float64
	Iterations int
	// BatchSize of 0 picks the algorithm default.
	BatchSize int
	HintRate  float64
	Alpha     float64
	Hyper     nnet.Hyper
	// Meta describes the dataset columns, needed by the CTGAN encoding.
	Meta dataset.Meta
	// Rand drives every random choice of the run.
	Rand    *rand.Rand
	Verbose bool
}

// Imputer fills the NaN cells of a data matrix.
// The returned matrix preserves every observed cell.
type Imputer interface {
	Impute(data *mat.Dense, p Params) (*mat.Dense, error)
}

// Registry maps algorithm names to implementations.
type Registry map[string]Imputer

// Default returns the registry of the study's algorithms.
func Default() Registry {
	return Registry{
		GAIN:     gainImputer{},
		SGAIN:    sgainImputer{},
		WSGAINCP: wsgainImputer{clip: true},
		WSGAINGP: wsgainImputer{penalty: true},
		CTGAN:    ctganImputer{},
	}
}

// Lookup resolves an algorithm by name, case-insensitively.
func (r Registry) Lookup(name string) (Imputer, error) {
	_, imputer, err := r.Resolve(name)
	return imputer, err
}

// Resolve returns the canonical name and implementation for the given
// algorithm name, case-insensitively.
func (r Registry) Resolve(name string) (string, Imputer, error) {
	for key, imputer := range r {
		if strings.EqualFold(key, name) {
			return key, imputer, nil
		}
	}
	return "", nil, fmt.Errorf("unknown algorithm %q, expected one of %v", name, r.Names())
}

// Names returns the sorted registered algorithm names.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

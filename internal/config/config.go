package config

import (
	"fmt"
	"strings"
)

// Error signals an invalid or unknown value in the run configuration.
type Error struct {
	Field  string
	Value  string
	Reason string
}

func (e Error) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%q: %s", e.Field, e.Value, e.Reason)
}

// Errorf creates a configuration error for the given field and value.
func Errorf(field string, value interface{}, format string, args ...interface{}) Error {
	return Error{
		Field:  field,
		Value:  fmt.Sprintf("%v", value),
		Reason: fmt.Sprintf(format, args...),
	}
}

// Config holds the parameters of one benchmark invocation.
// It is built once from the command line and never mutated.
type Config struct {
	Algos     []string
	Datasets  []string
	MissRate  float64
	Optimizer string
	LearnRate float64
	// Iterations is the number of training steps per run.
	Iterations int
	// Runs is the number of independent trials per (algorithm, dataset) pair.
	Runs int

	// BatchSize of 0 lets each algorithm pick its default,
	// ceil(sqrt(n)) for the SGAIN family and 128 for GAIN.
	BatchSize int
	HintRate  float64
	Alpha     float64

	// Seed of 0 means a time-based seed, i.e. a non-deterministic benchmark.
	// Any other value makes the whole benchmark reproducible.
	Seed int64

	DataDir     string
	Output      string
	MetricsAddr string
	Verbose     bool
}

// Split parses a comma-separated flag value into its trimmed parts.
func Split(list string) []string {
	parts := make([]string, 0)
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Validate checks ranges and counts.
// Algorithm, dataset and optimizer names are resolved against their
// registries when the experiment is built.
func (c Config) Validate() error {
	if len(c.Algos) == 0 {
		return Errorf("algos", "", "at least one algorithm is required")
	}
	if len(c.Datasets) == 0 {
		return Errorf("datasets", "", "at least one dataset is required")
	}
	if c.MissRate < 0 || c.MissRate > 1 {
		return Errorf("miss_rate", c.MissRate, "must be within [0,1]")
	}
	if c.LearnRate <= 0 {
		return Errorf("learn_rate", c.LearnRate, "must be positive")
	}
	if c.Iterations <= 0 {
		return Errorf("n_iterations", c.Iterations, "must be positive")
	}
	if c.Runs <= 0 {
		return Errorf("n_runs", c.Runs, "must be positive")
	}
	if c.BatchSize < 0 {
		return Errorf("batch_size", c.BatchSize, "must not be negative")
	}
	if c.HintRate < 0 || c.HintRate > 1 {
		return Errorf("hint_rate", c.HintRate, "must be within [0,1]")
	}
	if c.Alpha < 0 {
		return Errorf("alpha", c.Alpha, "must not be negative")
	}
	return nil
}

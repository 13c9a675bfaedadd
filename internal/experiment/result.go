package experiment

import (
	"fmt"
	"time"
)

// Key identifies one (algorithm, dataset) pair of the benchmark.
type Key struct {
	Algorithm string `json:"algorithm"`
	Dataset   string `json:"dataset"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Algorithm, k.Dataset)
}

// Result is the outcome of one imputation run.
type Result struct {
	ID        string        `json:"id"`
	Algorithm string        `json:"algorithm"`
	Dataset   string        `json:"dataset"`
	Run       int           `json:"run"`
	Seed      int64         `json:"seed"`
	RMSE      float64       `json:"rmse"`
	Duration  time.Duration `json:"duration"`
}

// Summary aggregates the runs of one (algorithm, dataset) pair.
type Summary struct {
	Key       Key      `json:"key"`
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	MissRate  float64  `json:"miss_rate"`
	Runs      int      `json:"runs"`
	RMSEMean  float64  `json:"rmse_mean"`
	RMSEStDev float64  `json:"rmse_st_dev"`
	TimeMean  float64  `json:"time_mean_seconds"`
	TimeStDev float64  `json:"time_st_dev_seconds"`
	Results   []Result `json:"results"`
}

// RunError wraps a failure of the underlying imputation procedure with
// its benchmark coordinates. It is propagated, never retried.
type RunError struct {
	Algorithm string
	Dataset   string
	Run       int
	Err       error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %d of %s on %s failed: %v", e.Run, e.Algorithm, e.Dataset, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

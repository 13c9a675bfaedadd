// Package experiment drives the benchmark: for every requested
// (algorithm, dataset) pair it performs the configured number of
// independent runs, each one amputing the dataset, imputing it and
// scoring the result, and aggregates per pair.
package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/dtneves/ICCS-2021/internal/buffer"
	"github.com/dtneves/ICCS-2021/internal/config"
	"github.com/dtneves/ICCS-2021/internal/dataset"
	"github.com/dtneves/ICCS-2021/internal/imputation"
	"github.com/dtneves/ICCS-2021/internal/metrics"
	"github.com/dtneves/ICCS-2021/internal/nnet"
	"github.com/dtneves/ICCS-2021/internal/storage"
)

// Driver runs the cartesian product of algorithms and datasets
// sequentially, exactly as configured. It holds no mutable state across
// runs beyond the aggregation buffers.
type Driver struct {
	cfg      config.Config
	registry imputation.Registry
	store    storage.Persistence

	algos []resolved
	metas []dataset.Meta
}

type resolved struct {
	name    string
	imputer imputation.Imputer
}

// Option adjusts the driver construction.
type Option func(*Driver)

// WithRegistry swaps the algorithm registry, used by tests.
func WithRegistry(registry imputation.Registry) Option {
	return func(d *Driver) {
		d.registry = registry
	}
}

// WithStorage sets the persistence for run summaries.
func WithStorage(store storage.Persistence) Option {
	return func(d *Driver) {
		d.store = store
	}
}

// New validates the configuration and resolves every name against its
// registry. Any unknown algorithm, dataset or optimizer surfaces here
// as a configuration error, before anything runs.
func New(cfg config.Config, opts ...Option) (*Driver, error) {
	d := &Driver{
		cfg:      cfg,
		registry: imputation.Default(),
		store:    storage.NewVoidStorage(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, name := range cfg.Algos {
		canonical, imputer, err := d.registry.Resolve(name)
		if err != nil {
			return nil, config.Errorf("algos", name, "%v", err)
		}
		d.algos = append(d.algos, resolved{name: canonical, imputer: imputer})
	}
	for _, name := range cfg.Datasets {
		meta, err := dataset.Lookup(name)
		if err != nil {
			return nil, config.Errorf("datasets", name, "%v", err)
		}
		d.metas = append(d.metas, meta)
	}
	if _, err := nnet.NewOptimizer(cfg.Optimizer, cfg.LearnRate, nnet.DefaultHyper()); err != nil {
		return nil, config.Errorf("optimizer", cfg.Optimizer, "%v", err)
	}
	return d, nil
}

// Run executes the benchmark and returns one summary per
// (algorithm, dataset) pair. The first failing run aborts everything.
func (d *Driver) Run(ctx context.Context) (map[Key]Summary, error) {
	seed := d.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		log.Info().Int64("seed", seed).Msg("no seed given, benchmark is non-deterministic")
	}

	summaries := make(map[Key]Summary, len(d.algos)*len(d.metas))
	for _, algo := range d.algos {
		for _, meta := range d.metas {
			truth, err := d.load(meta)
			if err != nil {
				return nil, err
			}

			summary, err := d.runPair(ctx, algo, meta, truth, seed)
			if err != nil {
				return nil, err
			}
			summaries[summary.Key] = summary

			key := storage.Key{Algorithm: algo.name, Dataset: meta.Name}
			if err := d.store.Store(key, summary); err != nil {
				return nil, fmt.Errorf("could not persist summary for '%v': %w", key, err)
			}
		}
	}
	return summaries, nil
}

func (d *Driver) load(meta dataset.Meta) (*mat.Dense, error) {
	data, err := dataset.Load(d.cfg.DataDir, meta)
	if err != nil {
		return nil, err
	}
	truth, err := dataset.DropMissing(data)
	if err != nil {
		return nil, fmt.Errorf("dataset '%s': %w", meta.Name, err)
	}
	return truth, nil
}

func (d *Driver) runPair(ctx context.Context, algo resolved, meta dataset.Meta, truth *mat.Dense, seed int64) (Summary, error) {
	rows, cols := truth.Dims()
	stats := buffer.NewStatsCollector(2)
	results := make([]Result, 0, d.cfg.Runs)

	log.Info().Str("algorithm", algo.name).Str("dataset", meta.Name).
		Int("rows", rows).Int("cols", cols).
		Float64("miss_rate", d.cfg.MissRate).
		Msg("benchmarking pair")

	for run := 0; run < d.cfg.Runs; run++ {
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		default:
		}

		runSeed := seed + int64(run)
		rnd := rand.New(rand.NewSource(runSeed))
		amputed, mask := dataset.Ampute(truth, d.cfg.MissRate, rnd)

		start := time.Now()
		imputed, err := algo.imputer.Impute(amputed, imputation.Params{
			Optimizer:  d.cfg.Optimizer,
			LearnRate:  d.cfg.LearnRate,
			Iterations: d.cfg.Iterations,
			BatchSize:  d.cfg.BatchSize,
			HintRate:   d.cfg.HintRate,
			Alpha:      d.cfg.Alpha,
			Hyper:      nnet.DefaultHyper(),
			Meta:       meta,
			Rand:       rnd,
			Verbose:    d.cfg.Verbose,
		})
		if err != nil {
			return Summary{}, &RunError{Algorithm: algo.name, Dataset: meta.Name, Run: run, Err: err}
		}
		elapsed := time.Since(start)

		rmse := imputation.RMSE(truth, imputed, mask)
		stats.Push(rmse, elapsed.Seconds())
		metrics.Observer.ObserveRun(algo.name, meta.Name, rmse, elapsed.Seconds())
		results = append(results, Result{
			ID:        uuid.New().String(),
			Algorithm: algo.name,
			Dataset:   meta.Name,
			Run:       run,
			Seed:      runSeed,
			RMSE:      rmse,
			Duration:  elapsed,
		})

		log.Info().Str("algorithm", algo.name).Str("dataset", meta.Name).
			Int("run", run).
			Float64("rmse", rmse).
			Dur("duration", elapsed).
			Msg("run done")
	}

	rmseStats, timeStats := stats.Stats()[0], stats.Stats()[1]
	return Summary{
		Key:       Key{Algorithm: algo.name, Dataset: meta.Name},
		Rows:      rows,
		Cols:      cols,
		MissRate:  d.cfg.MissRate,
		Runs:      d.cfg.Runs,
		RMSEMean:  rmseStats.Avg(),
		RMSEStDev: rmseStats.StDev(),
		TimeMean:  timeStats.Avg(),
		TimeStDev: timeStats.StDev(),
		Results:   results,
	}, nil
}

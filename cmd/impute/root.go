package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dtneves/ICCS-2021/internal/config"
	"github.com/dtneves/ICCS-2021/internal/experiment"
	"github.com/dtneves/ICCS-2021/internal/imputation"
	"github.com/dtneves/ICCS-2021/internal/metrics"
	"github.com/dtneves/ICCS-2021/internal/nnet"
	jsonstorage "github.com/dtneves/ICCS-2021/internal/storage/json"
)

var rootCmd = &cobra.Command{
	Use:   "impute",
	Short: "GAN based missing data imputation benchmark",
	Long: `Benchmarks GAN based missing data imputation algorithms
(GAIN, SGAIN, WSGAIN-CP, WSGAIN-GP and a CTGAN baseline) against
UCI datasets: per (algorithm, dataset) pair it amputes the data at the
given miss rate, imputes it and reports the RMSE across runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBenchmark,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.String("algos", imputation.GAIN, "comma separated algorithms to benchmark")
	flags.String("datasets", "iris", "comma separated datasets to benchmark")
	flags.Float64("miss_rate", 0.2, "missing data probability")
	flags.String("optimizer", nnet.GDA, "optimizer: GDA, RMSProp or Adam")
	flags.Float64("learn_rate", 0.001, "optimizer learning rate")
	flags.Int("n_iterations", 1000, "number of training iterations")
	flags.Int("n_runs", 3, "number of runs per (algorithm, dataset) pair")
	flags.Int("batch_size", 0, "mini batch size, 0 picks the algorithm default")
	flags.Float64("hint_rate", 0.9, "hint probability (GAIN)")
	flags.Float64("alpha", 100, "reconstruction loss weight")
	flags.Int64("seed", 0, "random seed, 0 derives one from the clock")
	flags.String("data-dir", "datasets", "directory holding the dataset csv files")
	flags.String("output", "", "directory for json run summaries")
	flags.String("metrics-addr", "", "prometheus listen address, empty disables it")
	flags.Bool("verbose", false, "log training progress")
	viper.BindPFlags(flags)
}

func initConfig() {
	viper.SetEnvPrefix("IMPUTE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func loadConfig() config.Config {
	return config.Config{
		Algos:       config.Split(viper.GetString("algos")),
		Datasets:    config.Split(viper.GetString("datasets")),
		MissRate:    viper.GetFloat64("miss_rate"),
		Optimizer:   viper.GetString("optimizer"),
		LearnRate:   viper.GetFloat64("learn_rate"),
		Iterations:  viper.GetInt("n_iterations"),
		Runs:        viper.GetInt("n_runs"),
		BatchSize:   viper.GetInt("batch_size"),
		HintRate:    viper.GetFloat64("hint_rate"),
		Alpha:       viper.GetFloat64("alpha"),
		Seed:        viper.GetInt64("seed"),
		DataDir:     viper.GetString("data-dir"),
		Output:      viper.GetString("output"),
		MetricsAddr: viper.GetString("metrics-addr"),
		Verbose:     viper.GetBool("verbose"),
	}
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg.Verbose)

	if cfg.MetricsAddr != "" {
		metrics.Serve(cfg.MetricsAddr)
	}

	opts := make([]experiment.Option, 0, 1)
	if cfg.Output != "" {
		store, err := jsonstorage.NewStorage(cfg.Output)
		if err != nil {
			return err
		}
		opts = append(opts, experiment.WithStorage(store))
	}

	driver, err := experiment.New(cfg, opts...)
	if err != nil {
		return err
	}
	summaries, err := driver.Run(cmd.Context())
	if err != nil {
		return err
	}
	experiment.Render(cmd.OutOrStdout(), driver.Pairs(), summaries)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kraklabs/redymo/internal/config"
	"github.com/kraklabs/redymo/internal/engine"
	"github.com/kraklabs/redymo/internal/metrics"
	"github.com/kraklabs/redymo/internal/output"
	"github.com/kraklabs/redymo/internal/provider"
)

var (
	flagCells        int
	flagOrganism     string
	flagResources    int
	flagTimeout      int
	flagSpeed        int
	flagDormant      bool
	flagName         string
	flagSeed         uint64
	flagPeriod       int
	flagConstitutive int
	flagDataDir      string
	flagProbability  float64
	flagOutput       string
	flagThreads      int

	flagConfigPath  string
	flagSummary     bool
	flagGPU         bool
	flagLogFormat   string
	flagMetricsAddr string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an ensemble of cell simulations and write per-cell replication timestamps",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&flagCells, "cells", "c", 0, "Number of independent cell simulations to run (required)")
	runCmd.Flags().StringVarP(&flagOrganism, "organism", "o", "", "Organism name the data provider should load (required)")
	runCmd.Flags().IntVarP(&flagResources, "resources", "r", 0, "Fork pool size per cell (required)")
	runCmd.Flags().IntVarP(&flagTimeout, "timeout", "T", 0, "Maximum number of discrete time steps per cell (required)")
	runCmd.Flags().IntVarP(&flagSpeed, "speed", "s", 1, "Bases advanced per fork per step")
	runCmd.Flags().BoolVar(&flagDormant, "dormant", false, "Enable dormant-origin boosting around newly fired origins")
	runCmd.Flags().StringVarP(&flagName, "name", "n", "", "Run name, used to label output")
	runCmd.Flags().Uint64VarP(&flagSeed, "seed", "x", 0, "Base PRNG seed; each cell is seeded with seed XOR cell index")
	runCmd.Flags().IntVarP(&flagPeriod, "period", "P", 1, "Reference period dividing the landscape into a per-step firing rate")
	runCmd.Flags().IntVarP(&flagConstitutive, "constitutive", "k", 0, "Number of constitutive origins to pre-fire genome-wide at t=0")
	runCmd.Flags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the organism's chromosome descriptors")
	runCmd.Flags().Float64VarP(&flagProbability, "probability", "p", 0, "Uniform firing probability override (0 disables)")
	runCmd.Flags().StringVarP(&flagOutput, "output", "O", "out", "Output directory for per-cell replication timestamps")
	runCmd.Flags().IntVarP(&flagThreads, "threads", "t", 1, "Worker threads drawing cell indices from the shared task queue")

	runCmd.Flags().StringVarP(&flagConfigPath, "config", "C", "", "YAML config file; overwrites whichever fields it sets, applied after flags")
	runCmd.Flags().BoolVar(&flagSummary, "summary", false, "Print a parameter summary before running")
	runCmd.Flags().BoolVarP(&flagGPU, "gpu", "g", false, "Deprecated, ignored: GPU processing is not supported")
	runCmd.Flags().StringVar(&flagLogFormat, "log-format", "console", "Log format: 'json' or 'console'")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "If set, serve Prometheus metrics on this address (e.g. :9090) until the run completes")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Config{
		Cells:        flagCells,
		Organism:     flagOrganism,
		Resources:    flagResources,
		Timeout:      flagTimeout,
		Speed:        flagSpeed,
		Dormant:      flagDormant,
		Name:         flagName,
		Seed:         flagSeed,
		Period:       flagPeriod,
		Constitutive: flagConstitutive,
		DataDir:      flagDataDir,
		Probability:  flagProbability,
		Output:       flagOutput,
		Threads:      flagThreads,
		Mode:         "simulate",
	}

	if flagConfigPath != "" {
		if err := config.MergeFile(&cfg, flagConfigPath); err != nil {
			return err
		}
	}
	cfg = config.WithDefaults(cfg)

	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("missing required parameters")
		return err
	}

	setupLog(flagLogFormat)

	if flagGPU {
		log.Warn().Msg("GPU processing is not supported, ignoring --gpu")
	}
	if flagSummary {
		logSummary(cfg)
	}
	if cfg.Mode != "simulate" {
		err := fmt.Errorf("run: unsupported simulation mode %q, only \"simulate\" is implemented", cfg.Mode)
		log.Error().Err(err).Msg("unsupported simulation mode")
		return err
	}

	dataProvider, err := provider.NewFileProvider(cfg.DataDir)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	if flagMetricsAddr != "" {
		server := &http.Server{Addr: flagMetricsAddr, Handler: reg.Handler()}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		defer server.Close()
	}

	var progress engine.Progress
	if isatty.IsTerminal(os.Stdout.Fd()) && strings.ToLower(flagLogFormat) != "json" {
		progress = progressbar.Default(int64(cfg.Cells), "simulating cells")
	}

	start := time.Now()
	results, err := engine.RunEnsemble(context.Background(), cfg, dataProvider, reg, progress, log.Logger)
	if err != nil {
		return err
	}

	log.Info().
		Int("cells", cfg.Cells).
		Dur("elapsed", time.Since(start)).
		Msg("ensemble run complete")

	if err := output.WriteCellResults(cfg.Output, results); err != nil {
		return err
	}

	output.PrintSummaryTable(os.Stdout, results)
	return nil
}

func logSummary(cfg config.Config) {
	log.Info().
		Int("cells", cfg.Cells).
		Str("organism", cfg.Organism).
		Int("resources", cfg.Resources).
		Int("speed", cfg.Speed).
		Int("timeout", cfg.Timeout).
		Bool("dormant", cfg.Dormant).
		Int("period", cfg.Period).
		Int("constitutive", cfg.Constitutive).
		Str("data_dir", cfg.DataDir).
		Float64("probability", cfg.Probability).
		Str("output", cfg.Output).
		Int("threads", cfg.Threads).
		Uint64("seed", cfg.Seed).
		Msg("parameter summary")
}

func setupLog(format string) {
	if strings.ToLower(format) == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = log.Output(os.Stdout)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}
}

package cmd

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/epidemic-sim/epidemic-sim/sim"
)

var (
	// CLI flags
	modelPath string // Path to the YAML model description
	seed      uint64 // Seed for the shared random source
	output    string // CSV report destination ("" = stdout)
	headline  bool   // Whether the report starts with a column-name row
	logLevel  string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epidemic-sim",
	Short: "Discrete-event simulator of epidemic spread through a scheduled population",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if modelPath == "" {
			logrus.Fatalf("Model file not provided. Exiting simulation.")
		}

		var out io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				logrus.Fatalf("Cannot create output file: %v", err)
			}
			defer f.Close()
			out = f
		}

		startTime := time.Now()
		if err := RunModel(modelPath, seed, out, headline); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation finished in %v", time.Since(startTime))
	},
}

// RunModel loads a model description, builds the population, attaches
// the daily census report to out, and runs the simulation to its end of
// time.
func RunModel(path string, seed uint64, out io.Writer, headline bool) error {
	cfg, err := sim.LoadModel(path)
	if err != nil {
		return err
	}

	logrus.Infof("Starting simulation: population=%d, infected=%d, end=%v days, seed=%d",
		cfg.Population, cfg.Infected, cfg.End, seed)

	s, err := cfg.Build(seed)
	if err != nil {
		return err
	}

	reporter := sim.NewReporter(out)
	if err := reporter.Start(s, headline); err != nil {
		return err
	}

	s.Run()
	return reporter.Err()
}

func init() {
	runCmd.Flags().StringVar(&modelPath, "model", "", "path to the YAML model description (required)")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the shared random source")
	runCmd.Flags().StringVar(&output, "output", "", "CSV report destination (default stdout)")
	runCmd.Flags().BoolVar(&headline, "headline", true, "emit a column-name headline row")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/riccardo-malabarba/cost-of-living/internal/aggregator"
	"github.com/riccardo-malabarba/cost-of-living/internal/budget"
	"github.com/riccardo-malabarba/cost-of-living/internal/common"
	"github.com/riccardo-malabarba/cost-of-living/internal/config"
	"github.com/riccardo-malabarba/cost-of-living/internal/normalizer"
	"github.com/riccardo-malabarba/cost-of-living/internal/pipeline"
	"github.com/riccardo-malabarba/cost-of-living/internal/qualityfilter"
	"github.com/riccardo-malabarba/cost-of-living/internal/rawsurvey"
	"github.com/riccardo-malabarba/cost-of-living/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the application configuration loaded before any command runs
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cost-of-living",
		Short: "A CLI tool to build cost-of-living datasets and monthly budget tables.",
		Long: `cost-of-living processes a raw consumer-price survey into a clean
per-city dataset and derives a monthly household budget per city from a set of
lifestyle parameters.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cost-of-living!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize configuration and logging
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Log = config.ConfigureLogging(Cfg)

			// Set the configured logger for all pipeline stages
			rawsurvey.SetLogger(Log)
			qualityfilter.SetLogger(Log)
			normalizer.SetLogger(Log)
			aggregator.SetLogger(Log)
			budget.SetLogger(Log)
			pipeline.SetLogger(Log)
			store.SetLogger(Log)
			common.SetLogger(Log)

			// Apply the configured CSV delimiter; the environment wins over
			// the config file for compatibility with existing setups.
			delim := Cfg.CSV.Delimiter
			if env := os.Getenv("CSV_DELIMITER"); env != "" {
				delim = env
			}
			if delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific budget command flags
	BudgetFile string
)

// Init initializes the root command and all flags
func Init() {
	// Add persistent flags to root command for common options
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before processing")
}

// Package process handles the raw survey processing command
package process

import (
	"context"

	"github.com/riccardo-malabarba/cost-of-living/cmd/root"
	"github.com/riccardo-malabarba/cost-of-living/internal/logging"
	"github.com/riccardo-malabarba/cost-of-living/internal/pipeline"
	"github.com/riccardo-malabarba/cost-of-living/internal/rawsurvey"

	"github.com/spf13/cobra"
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process a raw consumer-price survey into the per-city dataset",
	Long: `Process a raw consumer-price survey CSV: drop untrusted rows, convert
prices to the canonical currency, resolve each location and aggregate prices
per canonical city. The result is one CSV row per city.`,
	Run: processFunc,
}

func processFunc(cmd *cobra.Command, args []string) {
	inputFile := root.SharedFlags.Input
	if inputFile == "" {
		inputFile = "dataset/prices_raw.csv"
	}
	outputFile := root.SharedFlags.Output
	if outputFile == "" {
		outputFile = "dataset/prices_processed.csv"
	}

	root.Log.Info("Raw survey process command called")
	root.Log.Infof("Input raw survey file: %s", inputFile)
	root.Log.Infof("Output dataset file: %s", outputFile)

	if root.SharedFlags.Validate {
		root.Log.Info("Validating format...")
		valid, err := rawsurvey.ValidateFormat(inputFile)
		if err != nil {
			root.Log.Fatalf("Error validating file: %v", err)
		}
		if !valid {
			root.Log.Fatal("The file is not in a valid raw survey format")
		}
		root.Log.Info("Validation successful.")
	}

	p, err := pipeline.New(root.Cfg, logging.NewLogrusAdapterFromLogger(root.Log))
	if err != nil {
		root.Log.Fatalf("Error building pipeline: %v", err)
	}

	summary, err := p.Run(context.Background(), inputFile, outputFile)
	if err != nil {
		root.Log.Fatalf("Error processing raw survey: %v", err)
	}

	root.Log.Infof("Processed %d raw rows into %d cities (%d rows dropped)",
		summary.RawRows, summary.Cities, len(summary.Rejections))
	root.Log.Info("Raw survey processing completed successfully!")
}

// Package pipeline handles the end-to-end command
package pipeline

import (
	"context"

	"github.com/riccardo-malabarba/cost-of-living/cmd/root"
	"github.com/riccardo-malabarba/cost-of-living/internal/budget"
	"github.com/riccardo-malabarba/cost-of-living/internal/common"
	"github.com/riccardo-malabarba/cost-of-living/internal/logging"
	"github.com/riccardo-malabarba/cost-of-living/internal/pipeline"
	"github.com/riccardo-malabarba/cost-of-living/internal/rawsurvey"

	"github.com/spf13/cobra"
)

// Cmd represents the pipeline command
var Cmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline: raw survey straight to a budget table",
	Long: `Run the full pipeline in one step: process the raw consumer-price
survey into per-city records and derive a monthly budget table from them,
without writing the intermediate dataset.`,
	Run: pipelineFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.BudgetFile, "budget", "b", "", "Budget configuration YAML file (optional)")
}

func pipelineFunc(cmd *cobra.Command, args []string) {
	inputFile := root.SharedFlags.Input
	if inputFile == "" {
		inputFile = "dataset/prices_raw.csv"
	}
	outputFile := root.SharedFlags.Output
	if outputFile == "" {
		outputFile = "dataset/budget_processed.csv"
	}

	root.Log.Info("Full pipeline command called")
	root.Log.Infof("Input raw survey file: %s", inputFile)
	root.Log.Infof("Output budget table file: %s", outputFile)

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

	cfg := budget.DefaultConfiguration()
	if root.BudgetFile != "" {
		var err error
		cfg, err = budget.LoadConfiguration(root.BudgetFile)
		if err != nil {
			root.Log.Fatalf("Error loading budget configuration: %v", err)
		}
		root.Log.Infof("Loaded budget configuration from %s", root.BudgetFile)
	}

	p, err := pipeline.New(root.Cfg, logging.NewLogrusAdapterFromLogger(root.Log))
	if err != nil {
		root.Log.Fatalf("Error building pipeline: %v", err)
	}

	records, summary, err := p.Process(context.Background(), inputFile)
	if err != nil {
		root.Log.Fatalf("Error processing raw survey: %v", err)
	}
	root.Log.Infof("Processed %d raw rows into %d cities (%d rows dropped)",
		summary.RawRows, summary.Cities, len(summary.Rejections))

	table := budget.BuildTable(records, cfg)

	if err := common.WriteCSVFile(table, outputFile); err != nil {
		root.Log.Fatalf("Error writing budget table: %v", err)
	}
	root.Log.Info("Full pipeline completed successfully!")
}

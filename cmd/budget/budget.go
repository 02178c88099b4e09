// Package budget handles the budget table command
package budget

import (
	"github.com/riccardo-malabarba/cost-of-living/cmd/root"
	"github.com/riccardo-malabarba/cost-of-living/internal/budget"
	"github.com/riccardo-malabarba/cost-of-living/internal/common"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Derive a monthly budget table from a processed dataset",
	Long: `Derive a monthly household budget per city from the processed per-city
dataset and a set of lifestyle parameters. Without --budget the documented
default lifestyle is used.`,
	Run: budgetFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.BudgetFile, "budget", "b", "", "Budget configuration YAML file (optional)")
}

func budgetFunc(cmd *cobra.Command, args []string) {
	inputFile := root.SharedFlags.Input
	if inputFile == "" {
		inputFile = "dataset/prices_processed.csv"
	}
	outputFile := root.SharedFlags.Output
	if outputFile == "" {
		outputFile = "dataset/budget_processed.csv"
	}

	root.Log.Info("Budget table command called")
	root.Log.Infof("Input dataset file: %s", inputFile)
	root.Log.Infof("Output budget table file: %s", outputFile)

	cfg := budget.DefaultConfiguration()
	if root.BudgetFile != "" {
		var err error
		cfg, err = budget.LoadConfiguration(root.BudgetFile)
		if err != nil {
			root.Log.Fatalf("Error loading budget configuration: %v", err)
		}
		root.Log.Infof("Loaded budget configuration from %s", root.BudgetFile)
	}

	records, err := common.ReadCSVFile[models.CanonicalCityRecord](inputFile)
	if err != nil {
		root.Log.Fatalf("Error reading dataset: %v", err)
	}

	table := budget.BuildTable(records, cfg)

	if err := common.WriteCSVFile(table, outputFile); err != nil {
		root.Log.Fatalf("Error writing budget table: %v", err)
	}
	root.Log.Infof("Budget table with %d cities written successfully!", len(table))
}

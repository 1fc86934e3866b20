package cli

import (
	"github.com/spf13/cobra"

	"github.com/azsmoke-io/azsmoke/internal/eval"
	"github.com/azsmoke-io/azsmoke/internal/plan"
)

var (
	planRegion   string
	planPrefix   string
	planSpecFile string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the resource chain without creating anything",
	Long: `Builds the descriptor chain and prints it in creation order. No provider
calls are made.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planRegion, "region", "", "Azure region (overrides the run spec)")
	planCmd.Flags().StringVar(&planPrefix, "prefix", "", "Resource name prefix (overrides the run spec)")
	planCmd.Flags().StringVar(&planSpecFile, "spec", "", "Path to a PKL run spec file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	spec, err := eval.LoadSpec(cmd.Context(), planSpecFile)
	if err != nil {
		return err
	}

	p, err := plan.Chain(chainOptions(spec, planPrefix, planRegion))
	if err != nil {
		return err
	}

	renderPlan(p)
	return nil
}

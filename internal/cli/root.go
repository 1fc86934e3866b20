package cli

import (
	"github.com/spf13/cobra"

	"github.com/azsmoke-io/azsmoke/internal/logging"
)

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "azsmoke",
	Short: "Azure control-plane smoke test",
	Long: `Azsmoke provisions a dependent chain of Azure resources (resource group,
Cosmos DB account, Event Hub namespace, event hub, authorization rule and
a diagnostic setting), waits for every operation to finish, then tears
everything down again in reverse order.

Whatever was successfully created is deleted on every exit path, including
failures and Ctrl-C.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevel, logJSON)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(versionCmd)
}

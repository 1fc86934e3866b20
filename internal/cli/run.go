package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/azsmoke-io/azsmoke/internal/engine"
	"github.com/azsmoke-io/azsmoke/internal/eval"
	"github.com/azsmoke-io/azsmoke/internal/logging"
	"github.com/azsmoke-io/azsmoke/internal/plan"
)

var (
	runRegion       string
	runPrefix       string
	runSubscription string
	runSpecFile     string
	runProviderName string
	runKeep         bool
	runOpTimeout    time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Provision the resource chain, then tear it down",
	Long: `Provisions the full resource chain in dependency order, waiting for each
operation to reach a terminal state, then deletes everything in reverse
order.

The exit status is zero when provisioning succeeded. Cleanup failures are
reported as diagnostics but never mask the provisioning outcome.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runRegion, "region", "", "Azure region (overrides the run spec)")
	runCmd.Flags().StringVar(&runPrefix, "prefix", "", "Resource name prefix (overrides the run spec)")
	runCmd.Flags().StringVar(&runSubscription, "subscription", "", "Azure subscription ID (default: AZURE_SUBSCRIPTION_ID)")
	runCmd.Flags().StringVar(&runSpecFile, "spec", "", "Path to a PKL run spec file")
	runCmd.Flags().StringVar(&runProviderName, "provider", "azure", "Provider backend (azure, fake)")
	runCmd.Flags().BoolVar(&runKeep, "keep", false, "Skip teardown and leave resources in place")
	runCmd.Flags().DurationVar(&runOpTimeout, "op-timeout", engine.DefaultTimeout, "Timeout for each provider operation")
}

func runRun(cmd *cobra.Command, args []string) (retErr error) {
	// SIGINT/SIGTERM cancel provisioning; cleanup still runs on a
	// detached context below.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spec, err := eval.LoadSpec(ctx, runSpecFile)
	if err != nil {
		return err
	}

	// Planning failures abort before any resource is touched.
	p, err := plan.Chain(chainOptions(spec, runPrefix, runRegion))
	if err != nil {
		return err
	}

	prov, err := newProvider(runProviderName, runSubscription)
	if err != nil {
		return err
	}

	exec := engine.NewExecutor(prov)
	exec.OpTimeout = runOpTimeout

	// Whatever enters the ledger gets a deletion attempt before the
	// process exits, on every exit path.
	defer func() {
		if runKeep {
			logging.Warn("--keep set: leaving resources in place", "resources", exec.Ledger().Len())
			return
		}
		cleanupCtx := context.WithoutCancel(ctx)
		coord := engine.NewCoordinator(prov)
		coord.OpTimeout = runOpTimeout
		if cerr := coord.Cleanup(cleanupCtx, exec.Ledger()); cerr != nil {
			if retErr != nil {
				retErr = fmt.Errorf("%w (cleanup also failed: %v)", retErr, cerr)
			} else {
				// Provisioning succeeded; report but do not escalate.
				logging.Error("cleanup reported failures; resources may remain", "error", cerr)
			}
		}
	}()

	fmt.Printf("Provisioning %d resources in %q...\n", p.Len(), regionOf(p))
	if err := exec.Run(ctx, p); err != nil {
		return err
	}

	fmt.Printf("\nAll %d resources reached a terminal state. Tearing down...\n", exec.Ledger().Len())
	return nil
}

func regionOf(p *plan.Plan) string {
	for _, desc := range p.CreationOrder() {
		return desc.Region
	}
	return ""
}

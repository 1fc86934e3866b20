package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/azsmoke-io/azsmoke/internal/eval"
	"github.com/azsmoke-io/azsmoke/internal/plan"
	"github.com/azsmoke-io/azsmoke/internal/provider"
	"github.com/azsmoke-io/azsmoke/providers/azure"
	"github.com/azsmoke-io/azsmoke/providers/fake"
)

// newProvider selects the provider backend. The fake backend provisions
// nothing and exists for dry runs and tests.
func newProvider(name, subscription string) (provider.Interface, error) {
	switch name {
	case "azure":
		if subscription == "" {
			subscription = os.Getenv("AZURE_SUBSCRIPTION_ID")
		}
		if subscription == "" {
			return nil, fmt.Errorf("a subscription is required: pass --subscription or set AZURE_SUBSCRIPTION_ID")
		}
		return azure.New(azure.Options{SubscriptionID: subscription})
	case "fake":
		return fake.New(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// chainOptions merges the run spec with command-line overrides.
func chainOptions(spec *eval.RunSpec, prefix, region string) plan.ChainOptions {
	opts := plan.ChainOptions{
		Prefix:               spec.Prefix,
		Region:               spec.Region,
		NamespaceSKU:         spec.NamespaceSKU,
		NamespaceCapacity:    spec.NamespaceCapacity,
		PartitionCount:       spec.PartitionCount,
		MessageRetentionDays: spec.MessageRetentionDays,
		Tags:                 spec.Tags,
	}
	if prefix != "" {
		opts.Prefix = prefix
	}
	if region != "" {
		opts.Region = region
	}
	return opts
}

// renderPlan prints the descriptor chain in creation order.
func renderPlan(p *plan.Plan) {
	fmt.Println("Azsmoke will create the following resources, in order:")
	for i, desc := range p.CreationOrder() {
		fmt.Printf("\n  %d. \033[32m+\033[0m %s %q (%s)\n", i+1, desc.Kind, desc.Name, desc.Region)
		if deps := p.Dependencies(desc.Name); len(deps) > 0 {
			fmt.Printf("       depends on: %s\n", strings.Join(deps, ", "))
		}
	}
	fmt.Printf("\nPlan: %d to create, then delete in reverse order.\n", p.Len())
}

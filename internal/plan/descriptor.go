package plan

import "fmt"

// Kind identifies the type of Azure resource a descriptor provisions.
type Kind string

const (
	KindResourceGroup     Kind = "azure:Resources.ResourceGroup"
	KindCosmosAccount     Kind = "azure:DocumentDB.DatabaseAccount"
	KindEventHubNamespace Kind = "azure:EventHub.Namespace"
	KindEventHub          Kind = "azure:EventHub.EventHub"
	KindAuthorizationRule Kind = "azure:EventHub.AuthorizationRule"
	KindDiagnosticSetting Kind = "azure:Insights.DiagnosticSetting"
)

// Descriptor declares a single resource to be provisioned. Descriptors are
// built once at plan time and never mutated afterwards.
//
// Properties may embed ref://<descriptor>/<attribute> strings which are
// resolved against the ledger of already-created resources at execution
// time. References also contribute implicit dependency edges.
type Descriptor struct {
	Kind       Kind
	Name       string
	Region     string
	DependsOn  []string
	Properties map[string]any
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s.%s", d.Kind, d.Name)
}

// InvalidConfigurationError reports a descriptor whose declared dependency
// or reference target is missing from the plan. Planning-time only, never
// retryable.
type InvalidConfigurationError struct {
	Name    string // descriptor with the bad declaration
	Missing string // the dependency that could not be found
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: descriptor %q depends on unknown descriptor %q", e.Name, e.Missing)
}

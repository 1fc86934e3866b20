// Package plan builds the ordered list of resource descriptors a run will
// provision. Planning is pure: no I/O, no provider calls, deterministic
// apart from the randomness of generated names.
package plan

import (
	"fmt"
)

// Plan is an immutable, dependency-ordered set of descriptors.
type Plan struct {
	byName   map[string]*Descriptor
	graph    *dag
	order    []string
	revOrder []string
}

// New validates descriptors and computes creation and destruction order.
// A dependency or reference naming a descriptor absent from the list yields
// an *InvalidConfigurationError.
func New(descriptors []*Descriptor) (*Plan, error) {
	byName := make(map[string]*Descriptor, len(descriptors))
	for _, desc := range descriptors {
		if desc.Name == "" {
			return nil, fmt.Errorf("descriptor of kind %s has no name", desc.Kind)
		}
		if _, dup := byName[desc.Name]; dup {
			return nil, fmt.Errorf("duplicate descriptor name %q", desc.Name)
		}
		byName[desc.Name] = desc
	}

	graph, err := buildDAG(descriptors)
	if err != nil {
		return nil, err
	}

	return &Plan{
		byName:   byName,
		graph:    graph,
		order:    graph.order,
		revOrder: graph.revOrder,
	}, nil
}

// CreationOrder returns descriptors so that every descriptor appears after
// all descriptors it depends on.
func (p *Plan) CreationOrder() []*Descriptor {
	out := make([]*Descriptor, len(p.order))
	for i, name := range p.order {
		out[i] = p.byName[name]
	}
	return out
}

// DestructionOrder returns descriptors in reverse dependency order, safe
// for deletion.
func (p *Plan) DestructionOrder() []*Descriptor {
	out := make([]*Descriptor, len(p.revOrder))
	for i, name := range p.revOrder {
		out[i] = p.byName[name]
	}
	return out
}

// Get returns the descriptor with the given name, or nil.
func (p *Plan) Get(name string) *Descriptor {
	return p.byName[name]
}

// Dependencies returns the direct dependencies of the named descriptor,
// explicit and reference-implied.
func (p *Plan) Dependencies(name string) []string {
	return p.graph.dependencies(name)
}

// Len returns the number of descriptors in the plan.
func (p *Plan) Len() int {
	return len(p.order)
}

// ChainOptions parameterize the canonical smoke-test chain.
type ChainOptions struct {
	Prefix string
	Region string

	// Suffix overrides the random name suffix. Tests use this; a run
	// normally leaves it empty.
	Suffix string

	NamespaceSKU         string
	NamespaceCapacity    int
	PartitionCount       int
	MessageRetentionDays int
	Tags                 map[string]string
}

func (o *ChainOptions) withDefaults() ChainOptions {
	out := *o
	if out.Suffix == "" {
		out.Suffix = RandomSuffix()
	}
	if out.NamespaceSKU == "" {
		out.NamespaceSKU = "Standard"
	}
	if out.NamespaceCapacity <= 0 {
		out.NamespaceCapacity = 1
	}
	if out.PartitionCount <= 0 {
		out.PartitionCount = 2
	}
	if out.MessageRetentionDays <= 0 {
		out.MessageRetentionDays = 1
	}
	return out
}

// Chain builds the full provisioning chain: resource group, Cosmos DB
// account, Event Hub namespace, event hub, authorization rule, and a
// diagnostic setting streaming the Cosmos account's logs to the hub.
func Chain(opts ChainOptions) (*Plan, error) {
	if opts.Prefix == "" {
		return nil, fmt.Errorf("chain: prefix is required")
	}
	if opts.Region == "" {
		return nil, fmt.Errorf("chain: region is required")
	}
	o := opts.withDefaults()

	rg := resourceGroupName(o.Prefix, o.Suffix)
	cosmos := cosmosAccountName(o.Prefix, o.Suffix)
	ns := namespaceName(o.Prefix, o.Suffix)
	hub := eventHubName(o.Prefix, o.Suffix)
	rule := authorizationRuleName(o.Prefix, o.Suffix)
	diag := diagnosticSettingName(o.Prefix, o.Suffix)

	rgRef := "ref://" + rg + "/name"

	descriptors := []*Descriptor{
		{
			Kind:   KindResourceGroup,
			Name:   rg,
			Region: o.Region,
			Properties: map[string]any{
				"tags": tagsValue(o.Tags),
			},
		},
		{
			Kind:   KindCosmosAccount,
			Name:   cosmos,
			Region: o.Region,
			Properties: map[string]any{
				"resourceGroup": rgRef,
				"offerType":     "Standard",
				"kind":          "GlobalDocumentDB",
			},
		},
		{
			Kind:   KindEventHubNamespace,
			Name:   ns,
			Region: o.Region,
			Properties: map[string]any{
				"resourceGroup": rgRef,
				"sku":           o.NamespaceSKU,
				"capacity":      o.NamespaceCapacity,
			},
		},
		{
			Kind:   KindEventHub,
			Name:   hub,
			Region: o.Region,
			Properties: map[string]any{
				"resourceGroup":        rgRef,
				"namespace":            "ref://" + ns + "/name",
				"partitionCount":       o.PartitionCount,
				"messageRetentionDays": o.MessageRetentionDays,
			},
		},
		{
			Kind:   KindAuthorizationRule,
			Name:   rule,
			Region: o.Region,
			Properties: map[string]any{
				"resourceGroup": rgRef,
				"namespace":     "ref://" + ns + "/name",
				"rights":        []any{"Send", "Listen"},
			},
		},
		{
			Kind:   KindDiagnosticSetting,
			Name:   diag,
			Region: o.Region,
			// Binds the monitored Cosmos account to the destination hub,
			// so it depends on both sides of the chain.
			DependsOn: []string{hub},
			Properties: map[string]any{
				"scope":               "ref://" + cosmos + "/id",
				"eventHub":            "ref://" + hub + "/name",
				"authorizationRuleId": "ref://" + rule + "/id",
			},
		},
	}

	return New(descriptors)
}

func tagsValue(tags map[string]string) map[string]any {
	out := make(map[string]any, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

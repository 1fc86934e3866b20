// Package eval loads the optional PKL run specification.
package eval

import (
	"context"
	"fmt"

	"github.com/apple/pkl-go/pkl"
)

// RunSpec parameterizes a provisioning run. Every field has a default; a
// spec file only needs to state what it overrides.
type RunSpec struct {
	Prefix               string            `pkl:"prefix"`
	Region               string            `pkl:"region"`
	NamespaceSKU         string            `pkl:"namespaceSku"`
	NamespaceCapacity    int               `pkl:"namespaceCapacity"`
	PartitionCount       int               `pkl:"partitionCount"`
	MessageRetentionDays int               `pkl:"messageRetentionDays"`
	Tags                 map[string]string `pkl:"tags"`
}

// Default returns the built-in run specification.
func Default() *RunSpec {
	return &RunSpec{
		Prefix:               "azsmoke",
		Region:               "westus",
		NamespaceSKU:         "Standard",
		NamespaceCapacity:    1,
		PartitionCount:       2,
		MessageRetentionDays: 1,
	}
}

// LoadSpec evaluates a PKL run spec file. An empty path yields the
// defaults without touching the PKL runtime.
func LoadSpec(ctx context.Context, path string) (*RunSpec, error) {
	if path == "" {
		return Default(), nil
	}

	evaluator, err := pkl.NewEvaluator(ctx, pkl.PreconfiguredOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create PKL evaluator: %w", err)
	}
	defer evaluator.Close()

	spec := Default()
	if err := evaluator.EvaluateModule(ctx, pkl.FileSource(path), spec); err != nil {
		return nil, fmt.Errorf("failed to evaluate run spec: %w", err)
	}
	return spec, nil
}

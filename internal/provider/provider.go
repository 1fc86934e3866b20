// Package provider defines the contract between the engine and a cloud
// control plane. Implementations await every operation to its terminal
// state before returning; the engine never observes an in-flight
// long-running operation.
package provider

import (
	"context"

	"github.com/azsmoke-io/azsmoke/internal/plan"
)

// Resource is a descriptor whose ref:// properties have been resolved
// against the ledger. It is what a provider actually creates.
type Resource struct {
	Kind       plan.Kind
	Name       string
	Region     string
	Properties map[string]any
}

// Created reports a successfully provisioned resource. Outputs carry the
// attributes later descriptors may reference (at minimum "id" and "name").
type Created struct {
	ID      string
	Outputs map[string]string
}

// Interface is the management-plane surface the engine depends on.
//
// CreateOrUpdate is idempotent by name and blocks until the operation
// reaches a terminal state. Delete is idempotent: deleting an identifier
// that no longer exists is success, not an error. Get reports existence
// without side effects. ResourceID computes the deterministic remote
// identifier for a resource without calling the provider; the engine uses
// it to record possibly-created resources when an in-flight create is
// cancelled.
type Interface interface {
	CreateOrUpdate(ctx context.Context, res Resource) (*Created, error)
	Delete(ctx context.Context, kind plan.Kind, id string) error
	Get(ctx context.Context, kind plan.Kind, id string) (bool, error)
	ResourceID(res Resource) (string, error)
}

// Package engine drives a plan to completion: it provisions descriptors
// sequentially in dependency order, records every created resource in the
// ledger, and tears the ledger down in reverse order when the run ends.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/azsmoke-io/azsmoke/internal/logging"
	"github.com/azsmoke-io/azsmoke/internal/plan"
	"github.com/azsmoke-io/azsmoke/internal/provider"
)

// Executor issues creation requests in dependency order, awaiting each
// long-running operation's terminal state before moving on. Creation is
// fail-fast: the first failed descriptor halts the run.
type Executor struct {
	prov   provider.Interface
	ledger *Ledger

	// OpTimeout bounds each individual provider operation. Zero means
	// DefaultTimeout.
	OpTimeout time.Duration
	retry     *RetryPolicy
}

func NewExecutor(prov provider.Interface) *Executor {
	return &Executor{
		prov:   prov,
		ledger: NewLedger(),
		retry:  DefaultRetryPolicy(),
	}
}

// Run provisions every descriptor in the plan's creation order. On the
// first failure it stops issuing creates and returns a *ProvisioningError;
// the ledger keeps everything created up to that point so cleanup can run.
func (e *Executor) Run(ctx context.Context, p *plan.Plan) error {
	for _, desc := range p.CreationOrder() {
		if err := ctx.Err(); err != nil {
			// Cancelled between operations: nothing in flight, no
			// ambiguity, no ledger entry for this descriptor.
			return &ProvisioningError{Descriptor: desc, Err: err}
		}

		props, err := plan.ResolveRefs(desc.Properties, e.ledger.Lookup)
		if err != nil {
			return &ProvisioningError{Descriptor: desc, Err: err}
		}
		res := provider.Resource{
			Kind:       desc.Kind,
			Name:       desc.Name,
			Region:     desc.Region,
			Properties: props,
		}

		logging.Info("creating resource", "kind", desc.Kind, "name", desc.Name)
		start := time.Now()

		opCtx, cancel := WithTimeout(ctx, e.OpTimeout)
		var created *provider.Created
		err = RetryWithBackoff(opCtx, e.retry, func() error {
			c, createErr := e.prov.CreateOrUpdate(opCtx, res)
			if createErr == nil {
				created = c
			}
			return createErr
		}, IsTransientError)
		cancel()

		if err != nil {
			if isCancellation(ctx, err) {
				e.recordProvisional(desc, res)
			}
			return &ProvisioningError{Descriptor: desc, Err: err}
		}

		outputs := created.Outputs
		if outputs == nil {
			outputs = make(map[string]string, 2)
		}
		if _, ok := outputs["id"]; !ok {
			outputs["id"] = created.ID
		}
		if _, ok := outputs["name"]; !ok {
			outputs["name"] = desc.Name
		}
		e.ledger.Append(&Entry{
			Descriptor: desc,
			ID:         created.ID,
			Outputs:    outputs,
			CreatedAt:  time.Now(),
		})
		logging.Info("resource created", "kind", desc.Kind, "name", desc.Name, "id", created.ID, "elapsed", time.Since(start))
	}
	return nil
}

// Ledger returns the executor's ledger. After Run it holds exactly the
// resources whose creates succeeded (plus provisional entries for creates
// interrupted mid-flight), in creation order.
func (e *Executor) Ledger() *Ledger {
	return e.ledger
}

// recordProvisional notes a resource whose create was interrupted before a
// terminal state was observed. The resource may or may not exist remotely;
// cleanup treats it as possibly created and attempts a deletion.
func (e *Executor) recordProvisional(desc *plan.Descriptor, res provider.Resource) {
	id, err := e.prov.ResourceID(res)
	if err != nil {
		logging.Warn("cannot compute identifier for interrupted create; resource may leak", "kind", desc.Kind, "name", desc.Name, "error", err)
		return
	}
	logging.Warn("create interrupted; recording resource as possibly created", "kind", desc.Kind, "name", desc.Name, "id", id)
	e.ledger.Append(&Entry{
		Descriptor:  desc,
		ID:          id,
		Outputs:     map[string]string{"id": id, "name": desc.Name},
		CreatedAt:   time.Now(),
		Provisional: true,
	})
}

// isCancellation reports whether the create failed because the caller's
// context was cancelled or timed out, leaving the remote outcome unknown.
func isCancellation(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		ctx.Err() != nil
}

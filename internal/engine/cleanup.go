package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/azsmoke-io/azsmoke/internal/logging"
	"github.com/azsmoke-io/azsmoke/internal/provider"
)

// Coordinator deletes everything the ledger recorded, in reverse creation
// order. Each deletion is independent: one failure never prevents the next
// attempt. Failures are aggregated into a *CleanupError rather than
// aborting mid-cleanup.
type Coordinator struct {
	prov provider.Interface

	// OpTimeout bounds each individual deletion. Zero means DefaultTimeout.
	OpTimeout time.Duration
	retry     *RetryPolicy
}

func NewCoordinator(prov provider.Interface) *Coordinator {
	return &Coordinator{
		prov:  prov,
		retry: DefaultRetryPolicy(),
	}
}

// Cleanup drains the ledger and attempts a deletion for every entry.
// An empty ledger is an explicit no-op success. Callers that must survive
// cancellation of the surrounding run pass a detached context; the
// guarantee is that whatever entered the ledger gets a deletion attempt
// before the process exits.
func (c *Coordinator) Cleanup(ctx context.Context, ledger *Ledger) error {
	entries := ledger.Drain()
	if len(entries) == 0 {
		logging.Debug("cleanup: ledger is empty, nothing to delete")
		return nil
	}

	logging.Info("cleaning up", "resources", len(entries))

	var failures []error
	for _, entry := range entries {
		if err := c.deleteEntry(ctx, entry); err != nil {
			logging.Error("cleanup: deletion failed", "kind", entry.Descriptor.Kind, "name", entry.Descriptor.Name, "id", entry.ID, "error", err)
			failures = append(failures, fmt.Errorf("delete %s (%s): %w", entry.Descriptor, entry.ID, err))
			continue
		}
		logging.Info("cleanup: resource deleted", "kind", entry.Descriptor.Kind, "name", entry.Descriptor.Name)
	}

	if len(failures) > 0 {
		return &CleanupError{Failures: failures}
	}
	return nil
}

func (c *Coordinator) deleteEntry(ctx context.Context, entry *Entry) error {
	opCtx, cancel := WithTimeout(ctx, c.OpTimeout)
	defer cancel()

	if entry.Provisional {
		// The create never reported a terminal state. If the resource
		// never materialized, skip the delete instead of relying on the
		// provider's tolerance for unknown identifiers.
		exists, err := c.prov.Get(opCtx, entry.Descriptor.Kind, entry.ID)
		if err == nil && !exists {
			logging.Debug("cleanup: provisional resource never materialized", "id", entry.ID)
			return nil
		}
	}

	return RetryWithBackoff(opCtx, c.retry, func() error {
		return c.prov.Delete(opCtx, entry.Descriptor.Kind, entry.ID)
	}, IsTransientError)
}

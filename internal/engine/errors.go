package engine

import (
	"fmt"
	"strings"

	"github.com/azsmoke-io/azsmoke/internal/plan"
)

// ProvisioningError reports the descriptor whose create reached a failed
// terminal state. It halts the pipeline; the ledger built so far stays
// intact so cleanup can run.
type ProvisioningError struct {
	Descriptor *plan.Descriptor
	Err        error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed at %s: %v", e.Descriptor, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// CleanupError aggregates every deletion that failed during cleanup. It is
// reported as a supplementary diagnostic and never masks an earlier
// ProvisioningError, nor does it fail a run whose provisioning succeeded.
type CleanupError struct {
	Failures []error
}

func (e *CleanupError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("cleanup left %d resource(s) behind: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *CleanupError) Unwrap() []error {
	return e.Failures
}

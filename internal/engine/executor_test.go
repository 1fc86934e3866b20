package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azsmoke-io/azsmoke/internal/plan"
	"github.com/azsmoke-io/azsmoke/providers/fake"
)

func chainPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p, err := plan.Chain(plan.ChainOptions{Prefix: "smoke", Region: "westus", Suffix: "abc123"})
	require.NoError(t, err)
	return p
}

func TestExecutor_RunCreatesEverythingInOrder(t *testing.T) {
	prov := fake.New()
	exec := NewExecutor(prov)

	p := chainPlan(t)
	require.NoError(t, exec.Run(context.Background(), p))

	created := prov.Created()
	require.Len(t, created, 6)
	assert.Equal(t, []string{
		"smoke-rg-abc123",
		"smoke-cosmos-abc123",
		"smoke-ns-abc123",
		"smoke-hub-abc123",
		"smoke-sendlisten-abc123",
		"smoke-diag-abc123",
	}, created)

	// The ledger mirrors the provider, in the same order.
	require.Equal(t, 6, exec.Ledger().Len())
	for i, entry := range exec.Ledger().Entries() {
		assert.Equal(t, created[i], entry.Descriptor.Name)
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.Provisional)
		assert.False(t, entry.CreatedAt.IsZero())
	}
}

func TestExecutor_FailureHaltsRun(t *testing.T) {
	prov := fake.New()
	prov.CreateErr = map[string]error{
		"smoke-hub-abc123": errors.New("quota exceeded for partitions"),
	}
	exec := NewExecutor(prov)

	err := exec.Run(context.Background(), chainPlan(t))
	require.Error(t, err)

	var pErr *ProvisioningError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "smoke-hub-abc123", pErr.Descriptor.Name)

	// Everything before the failure is in the ledger; nothing after.
	entries := exec.Ledger().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "smoke-rg-abc123", entries[0].Descriptor.Name)
	assert.Equal(t, "smoke-cosmos-abc123", entries[1].Descriptor.Name)
	assert.Equal(t, "smoke-ns-abc123", entries[2].Descriptor.Name)

	// No create was issued past the failed descriptor.
	assert.NotContains(t, prov.Created(), "smoke-sendlisten-abc123")
	assert.NotContains(t, prov.Created(), "smoke-diag-abc123")
}

func TestExecutor_FirstResourceFailureLeavesEmptyLedger(t *testing.T) {
	prov := fake.New()
	prov.CreateErr = map[string]error{
		"smoke-rg-abc123": errors.New("location not available for subscription"),
	}
	exec := NewExecutor(prov)

	err := exec.Run(context.Background(), chainPlan(t))
	require.Error(t, err)
	assert.Equal(t, 0, exec.Ledger().Len())
}

func TestExecutor_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prov := fake.New()
	exec := NewExecutor(prov)

	err := exec.Run(ctx, chainPlan(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// Cancelled between operations: nothing was in flight, so the ledger
	// stays empty and no create reached the provider.
	assert.Equal(t, 0, exec.Ledger().Len())
	assert.Empty(t, prov.Created())
}

func TestExecutor_CancelledInFlightRecordsProvisionalEntry(t *testing.T) {
	prov := fake.New()
	prov.CreateErr = map[string]error{
		"smoke-ns-abc123": context.Canceled,
	}
	// The cancelled create nevertheless materialized remotely.
	prov.Phantom = map[string]bool{"smoke-ns-abc123": true}
	exec := NewExecutor(prov)

	err := exec.Run(context.Background(), chainPlan(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	entries := exec.Ledger().Entries()
	require.Len(t, entries, 3)

	last := entries[2]
	assert.Equal(t, "smoke-ns-abc123", last.Descriptor.Name)
	assert.True(t, last.Provisional)
	assert.NotEmpty(t, last.ID)
}

func TestExecutor_OutputsFeedLaterReferences(t *testing.T) {
	prov := fake.New()
	exec := NewExecutor(prov)

	require.NoError(t, exec.Run(context.Background(), chainPlan(t)))

	// The hub's namespace reference resolved to the namespace's recorded
	// output, not the literal ref string.
	v, ok := exec.Ledger().Lookup("smoke-ns-abc123", "name")
	require.True(t, ok)
	assert.Equal(t, "smoke-ns-abc123", v)
}

func TestIsCancellation(t *testing.T) {
	ctx := context.Background()
	assert.True(t, isCancellation(ctx, context.Canceled))
	assert.True(t, isCancellation(ctx, context.DeadlineExceeded))
	assert.False(t, isCancellation(ctx, errors.New("bad request")))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.True(t, isCancellation(cancelled, errors.New("bad request")))
}

package fake

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azsmoke-io/azsmoke/internal/plan"
	"github.com/azsmoke-io/azsmoke/internal/provider"
)

func TestProvider_CreateDeleteGet(t *testing.T) {
	p := New()
	ctx := context.Background()

	created, err := p.CreateOrUpdate(ctx, provider.Resource{
		Kind: plan.KindResourceGroup,
		Name: "rg",
	})
	require.NoError(t, err)
	assert.Equal(t, "fake://azure:Resources.ResourceGroup/rg", created.ID)
	assert.Equal(t, "rg", created.Outputs["name"])

	exists, err := p.Get(ctx, plan.KindResourceGroup, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, p.Delete(ctx, plan.KindResourceGroup, created.ID))

	exists, err = p.Get(ctx, plan.KindResourceGroup, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProvider_DeleteUnknownIDSucceeds(t *testing.T) {
	p := New()
	assert.NoError(t, p.Delete(context.Background(), plan.KindEventHub, "fake://azure:EventHub.EventHub/ghost"))
}

func TestProvider_ScriptedCreateFailure(t *testing.T) {
	p := New()
	boom := errors.New("boom")
	p.CreateErr = map[string]error{"bad": boom}

	_, err := p.CreateOrUpdate(context.Background(), provider.Resource{
		Kind: plan.KindCosmosAccount,
		Name: "bad",
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, p.Created())
	assert.False(t, p.Existing("fake://azure:DocumentDB.DatabaseAccount/bad"))
}

func TestProvider_PhantomCreateMaterializes(t *testing.T) {
	p := New()
	p.CreateErr = map[string]error{"bad": context.Canceled}
	p.Phantom = map[string]bool{"bad": true}

	_, err := p.CreateOrUpdate(context.Background(), provider.Resource{
		Kind: plan.KindEventHubNamespace,
		Name: "bad",
	})
	assert.Error(t, err)

	// The create failed, but the resource exists remotely.
	assert.True(t, p.Existing("fake://azure:EventHub.Namespace/bad"))
}

func TestProvider_ResourceIDIsDeterministic(t *testing.T) {
	p := New()
	res := provider.Resource{Kind: plan.KindEventHub, Name: "hub"}

	id1, err := p.ResourceID(res)
	require.NoError(t, err)
	id2, err := p.ResourceID(res)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Equal(t, "fake://azure:EventHub.EventHub/hub", id1)
}

func TestProvider_CountsCalls(t *testing.T) {
	p := New()
	ctx := context.Background()

	_, _ = p.CreateOrUpdate(ctx, provider.Resource{Kind: plan.KindResourceGroup, Name: "rg"})
	_, _ = p.Get(ctx, plan.KindResourceGroup, "fake://azure:Resources.ResourceGroup/rg")
	_ = p.Delete(ctx, plan.KindResourceGroup, "fake://azure:Resources.ResourceGroup/rg")

	assert.Equal(t, 3, p.Calls())
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azsmoke-io/azsmoke/internal/eval"
	"github.com/azsmoke-io/azsmoke/providers/fake"
)

func TestChainOptions_SpecValues(t *testing.T) {
	spec := &eval.RunSpec{
		Prefix:               "smoke",
		Region:               "eastus2",
		NamespaceSKU:         "Basic",
		NamespaceCapacity:    2,
		PartitionCount:       4,
		MessageRetentionDays: 3,
		Tags:                 map[string]string{"owner": "ci"},
	}

	opts := chainOptions(spec, "", "")
	assert.Equal(t, "smoke", opts.Prefix)
	assert.Equal(t, "eastus2", opts.Region)
	assert.Equal(t, "Basic", opts.NamespaceSKU)
	assert.Equal(t, 4, opts.PartitionCount)
	assert.Equal(t, map[string]string{"owner": "ci"}, opts.Tags)
}

func TestChainOptions_FlagsOverrideSpec(t *testing.T) {
	spec := eval.Default()

	opts := chainOptions(spec, "override", "northeurope")
	assert.Equal(t, "override", opts.Prefix)
	assert.Equal(t, "northeurope", opts.Region)
}

func TestNewProvider_Fake(t *testing.T) {
	prov, err := newProvider("fake", "")
	require.NoError(t, err)
	assert.IsType(t, &fake.Provider{}, prov)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := newProvider("gcp", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNewProvider_AzureRequiresSubscription(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "")

	_, err := newProvider("azure", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription")
}

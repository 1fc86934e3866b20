package azure

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresSubscription(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription")
}

func TestDecodeProps(t *testing.T) {
	props := map[string]any{
		"resourceGroup":        "smoke-rg",
		"namespace":            "smoke-ns",
		"partitionCount":       4,
		"messageRetentionDays": 3,
	}

	var cfg eventHubConfig
	require.NoError(t, decodeProps(props, &cfg))
	assert.Equal(t, "smoke-rg", cfg.ResourceGroup)
	assert.Equal(t, "smoke-ns", cfg.Namespace)
	assert.Equal(t, int64(4), cfg.PartitionCount)
	assert.Equal(t, int64(3), cfg.MessageRetentionDays)
}

func TestDecodeProps_Rights(t *testing.T) {
	// Resolved properties carry []any, not []string.
	props := map[string]any{
		"resourceGroup": "smoke-rg",
		"namespace":     "smoke-ns",
		"rights":        []any{"Send", "Listen"},
	}

	var cfg authorizationRuleConfig
	require.NoError(t, decodeProps(props, &cfg))
	assert.Equal(t, []string{"Send", "Listen"}, cfg.Rights)
}

func TestNamespaceSKU(t *testing.T) {
	sku, tier, err := namespaceSKU("")
	require.NoError(t, err)
	assert.Equal(t, armeventhub.SKUNameStandard, sku)
	assert.Equal(t, armeventhub.SKUTierStandard, tier)

	sku, tier, err = namespaceSKU("Basic")
	require.NoError(t, err)
	assert.Equal(t, armeventhub.SKUNameBasic, sku)
	assert.Equal(t, armeventhub.SKUTierBasic, tier)

	_, _, err = namespaceSKU("Hyperscale")
	assert.Error(t, err)
}

func TestAccessRights(t *testing.T) {
	rights, err := accessRights([]string{"Send", "Listen", "Manage"})
	require.NoError(t, err)
	assert.Equal(t, []*armeventhub.AccessRights{
		to.Ptr(armeventhub.AccessRightsSend),
		to.Ptr(armeventhub.AccessRightsListen),
		to.Ptr(armeventhub.AccessRightsManage),
	}, rights)

	// Empty defaults to Send+Listen.
	rights, err = accessRights(nil)
	require.NoError(t, err)
	assert.Len(t, rights, 2)

	_, err = accessRights([]string{"Admin"})
	assert.Error(t, err)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "x", deref(to.Ptr("x")))
}

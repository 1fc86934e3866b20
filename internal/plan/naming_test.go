package plan

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSuffix(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9a-f]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		s := RandomSuffix()
		assert.Regexp(t, hex, s)
		seen[s] = true
	}
	// 32 draws from a 24-bit space should essentially never all collide.
	assert.Greater(t, len(seen), 1)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "smoke-rg-abc123", resourceGroupName("smoke", "abc123"))
	assert.Equal(t, "smoke-ns-abc123", namespaceName("smoke", "abc123"))
	assert.Equal(t, "smoke-hub-abc123", eventHubName("smoke", "abc123"))
	assert.Equal(t, "smoke-sendlisten-abc123", authorizationRuleName("smoke", "abc123"))
	assert.Equal(t, "smoke-diag-abc123", diagnosticSettingName("smoke", "abc123"))
}

func TestCosmosAccountName_Lowercased(t *testing.T) {
	// Cosmos account names must be lowercase even when the prefix is not.
	assert.Equal(t, "smoke-cosmos-abc123", cosmosAccountName("Smoke", "ABC123"))
}

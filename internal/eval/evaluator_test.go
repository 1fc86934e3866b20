package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	spec := Default()
	assert.Equal(t, "azsmoke", spec.Prefix)
	assert.Equal(t, "westus", spec.Region)
	assert.Equal(t, "Standard", spec.NamespaceSKU)
	assert.Equal(t, 1, spec.NamespaceCapacity)
	assert.Equal(t, 2, spec.PartitionCount)
	assert.Equal(t, 1, spec.MessageRetentionDays)
}

func TestLoadSpec_EmptyPathYieldsDefaults(t *testing.T) {
	// No PKL runtime involvement when no spec file is given.
	spec, err := LoadSpec(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), spec)
}

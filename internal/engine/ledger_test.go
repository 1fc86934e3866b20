package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azsmoke-io/azsmoke/internal/plan"
)

func entryFor(name string, id string) *Entry {
	return &Entry{
		Descriptor: &plan.Descriptor{Kind: plan.KindResourceGroup, Name: name},
		ID:         id,
		Outputs:    map[string]string{"id": id, "name": name},
	}
}

func TestLedger_AppendPreservesOrder(t *testing.T) {
	l := NewLedger()
	l.Append(entryFor("a", "id-a"))
	l.Append(entryFor("b", "id-b"))
	l.Append(entryFor("c", "id-c"))

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Descriptor.Name)
	assert.Equal(t, "b", entries[1].Descriptor.Name)
	assert.Equal(t, "c", entries[2].Descriptor.Name)
	assert.Equal(t, 3, l.Len())
}

func TestLedger_DrainReversesAndEmpties(t *testing.T) {
	l := NewLedger()
	l.Append(entryFor("a", "id-a"))
	l.Append(entryFor("b", "id-b"))
	l.Append(entryFor("c", "id-c"))

	drained := l.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, "c", drained[0].Descriptor.Name)
	assert.Equal(t, "b", drained[1].Descriptor.Name)
	assert.Equal(t, "a", drained[2].Descriptor.Name)

	// The ledger is now empty: a second drain yields nothing.
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Drain())
}

func TestLedger_Lookup(t *testing.T) {
	l := NewLedger()
	l.Append(entryFor("rg", "/subscriptions/s/resourceGroups/rg"))

	v, ok := l.Lookup("rg", "id")
	require.True(t, ok)
	assert.Equal(t, "/subscriptions/s/resourceGroups/rg", v)

	v, ok = l.Lookup("rg", "name")
	require.True(t, ok)
	assert.Equal(t, "rg", v)

	_, ok = l.Lookup("rg", "missing")
	assert.False(t, ok)

	_, ok = l.Lookup("ghost", "id")
	assert.False(t, ok)
}

func TestLedger_EntriesReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Append(entryFor("a", "id-a"))

	entries := l.Entries()
	entries[0] = entryFor("mutated", "x")

	assert.Equal(t, "a", l.Entries()[0].Descriptor.Name)
}

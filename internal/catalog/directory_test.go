package catalog

import (
	"testing"

	"conductor/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartManifest() *api.Manifest {
	return &api.Manifest{
		Name:        "shop",
		Description: "Demo shop",
		Capabilities: []api.Capability{
			{
				ID:          "addToCart",
				DisplayName: "Add to cart",
				Handler:     "cart.add",
				Parameters: []api.Parameter{
					{Name: "itemId", Type: api.TypeString, Required: true},
				},
				UndoCapability: "removeFromCart",
			},
			{
				ID:      "removeFromCart",
				Handler: "cart.remove",
				Parameters: []api.Parameter{
					{Name: "itemId", Type: api.TypeString, Required: true},
				},
			},
			{
				ID:      "placeOrder",
				Handler: "order.place",
			},
		},
	}
}

func TestNew_ValidManifest(t *testing.T) {
	directory, err := New(cartManifest())
	require.NoError(t, err)

	capability, ok := directory.Resolve("addToCart")
	require.True(t, ok)
	assert.Equal(t, "cart.add", capability.Handler)

	_, ok = directory.Resolve("unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"addToCart", "removeFromCart", "placeOrder"}, directory.IDs())

	name, description := directory.Application()
	assert.Equal(t, "shop", name)
	assert.Equal(t, "Demo shop", description)
}

func TestNew_RejectsEmptyID(t *testing.T) {
	_, err := New(&api.Manifest{Capabilities: []api.Capability{{Handler: "h"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without an id")
}

func TestNew_RejectsDuplicateID(t *testing.T) {
	_, err := New(&api.Manifest{Capabilities: []api.Capability{
		{ID: "a", Handler: "h1"},
		{ID: "a", Handler: "h2"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate capability id 'a'")
}

func TestNew_RejectsUnresolvableUndo(t *testing.T) {
	_, err := New(&api.Manifest{Capabilities: []api.Capability{
		{ID: "a", Handler: "h", UndoCapability: "ghost"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown undo capability 'ghost'")
}

func TestUndo(t *testing.T) {
	directory, err := New(cartManifest())
	require.NoError(t, err)

	add, _ := directory.Resolve("addToCart")
	undo, ok := directory.Undo(add)
	require.True(t, ok)
	assert.Equal(t, "removeFromCart", undo.ID)

	order, _ := directory.Resolve("placeOrder")
	_, ok = directory.Undo(order)
	assert.False(t, ok)
}

func TestGraph_ManifestOrderAndProjection(t *testing.T) {
	manifest := &api.Manifest{
		Name: "shop",
		Capabilities: []api.Capability{
			{
				ID:          "checkout",
				DisplayName: "Checkout",
				Handler:     "order.checkout",
				Parameters: []api.Parameter{
					{Name: "total", Type: api.TypeNumber, Required: true},
					{Name: "cvv", Type: api.TypeString, Required: true, Collect: api.CollectOnDemand, Sensitive: true},
				},
			},
			{ID: "addToCart", Handler: "cart.add"},
		},
	}
	directory, err := New(manifest)
	require.NoError(t, err)

	graph := directory.Graph()
	assert.Equal(t, "shop", graph.Application)
	require.Len(t, graph.Capabilities, 2)

	// Declaration order, not alphabetical.
	assert.Equal(t, "checkout", graph.Capabilities[0].ID)
	assert.Equal(t, "addToCart", graph.Capabilities[1].ID)

	params := graph.Capabilities[0].Parameters
	require.Len(t, params, 2)
	assert.Equal(t, "total", params[0].Name)
	assert.True(t, params[0].Required)
	assert.Equal(t, "cvv", params[1].Name)
	assert.Equal(t, api.CollectOnDemand, params[1].Collect)
	assert.True(t, params[1].Sensitive)
}

func TestGraph_Deterministic(t *testing.T) {
	directory, err := New(cartManifest())
	require.NoError(t, err)

	first := directory.Graph()
	second := directory.Graph()
	assert.Equal(t, first, second)
}

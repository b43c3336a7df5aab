package engine

import (
	"context"
	"testing"

	"conductor/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerTable_RegisterLookupUnregister(t *testing.T) {
	table := NewHandlerTable(nil)
	assert.False(t, table.Has("h"))

	table.Register("h", func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return "one", nil
	})
	require.True(t, table.Has("h"))

	handler, ok := table.Lookup("h")
	require.True(t, ok)
	value, err := handler(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "one", value)

	// Last writer wins.
	table.Register("h", func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return "two", nil
	})
	handler, _ = table.Lookup("h")
	value, _ = handler(context.Background(), nil)
	assert.Equal(t, "two", value)

	table.Unregister("h")
	assert.False(t, table.Has("h"))
}

func TestHandlerTable_NamesSorted(t *testing.T) {
	noop := func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return nil, nil
	}
	table := NewHandlerTable(map[string]api.Handler{"zeta": noop, "alpha": noop, "mid": noop})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, table.Names())
}

func TestCheckerTable_RegisterLookup(t *testing.T) {
	table := NewCheckerTable(nil)
	_, ok := table.Lookup("c")
	assert.False(t, ok)

	table.Register("c", func(ctx context.Context, execCtx map[string]interface{}) (bool, error) {
		return true, nil
	})
	checker, ok := table.Lookup("c")
	require.True(t, ok)
	passed, err := checker(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, passed)

	table.Unregister("c")
	_, ok = table.Lookup("c")
	assert.False(t, ok)
}

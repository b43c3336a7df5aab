package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplace_PlainValuesPassThrough(t *testing.T) {
	e := New()

	for _, value := range []interface{}{"plain", 42, true, nil, 3.14} {
		result, err := e.Replace(value, map[string]interface{}{})
		require.NoError(t, err)
		assert.Equal(t, value, result)
	}
}

func TestReplace_SimpleReferencePreservesType(t *testing.T) {
	e := New()
	context := map[string]interface{}{
		"orderId": "o-1",
		"total":   99.99,
		"items":   []interface{}{"a", "b"},
	}

	result, err := e.Replace("{{ orderId }}", context)
	require.NoError(t, err)
	assert.Equal(t, "o-1", result)

	// A number stays a number, not its string rendering.
	result, err = e.Replace("{{ total }}", context)
	require.NoError(t, err)
	assert.Equal(t, 99.99, result)

	result, err = e.Replace("{{ .items }}", context)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, result)
}

func TestReplace_MissingSimpleReference(t *testing.T) {
	e := New()

	_, err := e.Replace("{{ ghost }}", map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing template variable: ghost")
}

func TestReplace_EmbeddedTemplateRendersString(t *testing.T) {
	e := New()
	context := map[string]interface{}{"name": "world"}

	result, err := e.Replace("hello {{ .name }}!", context)
	require.NoError(t, err)
	assert.Equal(t, "hello world!", result)
}

func TestReplace_SprigFunctions(t *testing.T) {
	e := New()

	result, err := e.Replace(`{{ .name | upper }}`, map[string]interface{}{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "WORLD", result)
}

func TestReplace_RecursesThroughMapsAndSlices(t *testing.T) {
	e := New()
	context := map[string]interface{}{"id": "i-1", "count": 2}

	result, err := e.Replace(map[string]interface{}{
		"itemId": "{{ id }}",
		"nested": map[string]interface{}{"quantity": "{{ count }}"},
		"list":   []interface{}{"{{ id }}", "static"},
	}, context)
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Equal(t, "i-1", m["itemId"])
	assert.Equal(t, 2, m["nested"].(map[string]interface{})["quantity"])
	assert.Equal(t, []interface{}{"i-1", "static"}, m["list"])
}

func TestReplace_ErrorNamesTheOffendingKey(t *testing.T) {
	e := New()

	_, err := e.Replace(map[string]interface{}{"itemId": "{{ ghost }}"}, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error in key 'itemId'")
}

func TestReplaceMap_ReturnsTypedMap(t *testing.T) {
	e := New()
	context := map[string]interface{}{"orderId": "o-1", "total": 99.99}

	resolved, err := e.ReplaceMap(map[string]interface{}{
		"id":     "{{ orderId }}",
		"amount": "{{ total }}",
		"note":   "plain",
	}, context)
	require.NoError(t, err)

	// The result is a concrete parameter map usable in an intent, with
	// reference types preserved.
	assert.Equal(t, map[string]interface{}{
		"id":     "o-1",
		"amount": 99.99,
		"note":   "plain",
	}, resolved)
}

func TestReplaceMap_PropagatesResolutionErrors(t *testing.T) {
	e := New()

	resolved, err := e.ReplaceMap(map[string]interface{}{"itemId": "{{ ghost }}"}, map[string]interface{}{})
	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.Contains(t, err.Error(), "error in key 'itemId'")
}

func TestRenderGoTemplate_MissingKeyIsError(t *testing.T) {
	e := New()

	_, err := e.RenderGoTemplate("value: {{ .absent }}", map[string]interface{}{})
	require.Error(t, err)
}

func TestExtractVariables(t *testing.T) {
	e := New()

	vars := e.ExtractVariables(map[string]interface{}{
		"a": "{{ orderId }}",
		"b": []interface{}{"{{ total }}", "plain"},
		"c": "{{ orderId }} and {{ customer }}",
	})
	assert.ElementsMatch(t, []string{"orderId", "total", "customer"}, vars)
}

package formatting

import (
	"bytes"
	"encoding/json"
	"testing"

	"conductor/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func shopGraph() api.CapabilityGraph {
	return api.CapabilityGraph{
		Application: "shop",
		Description: "web shop checkout",
		Capabilities: []api.CapabilitySummary{
			{
				ID:          "cart.add",
				DisplayName: "Add to cart",
				Description: "Adds an item to the shopping cart",
				Parameters: []api.ParameterSummary{
					{Name: "itemId", Type: api.TypeString, Required: true, Collect: api.CollectUpfront},
				},
			},
			{
				ID:          "checkout",
				DisplayName: "Checkout",
				Parameters: []api.ParameterSummary{
					{Name: "total", Type: api.TypeNumber, Required: true, Collect: api.CollectUpfront},
					{Name: "cvv", Type: api.TypeString, Required: true, Collect: api.CollectOnDemand, Sensitive: true},
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, value := range []string{"table", "json", "yaml"} {
		format, err := ParseFormat(value)
		require.NoError(t, err)
		assert.Equal(t, OutputFormat(value), format)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format 'xml'")
}

func TestWriteGraph_JSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, shopGraph(), FormatJSON))

	var decoded api.CapabilityGraph
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, shopGraph(), decoded)
}

func TestWriteGraph_YAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, shopGraph(), FormatYAML))

	var decoded api.CapabilityGraph
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "shop", decoded.Application)
	require.Len(t, decoded.Capabilities, 2)
	assert.Equal(t, "cart.add", decoded.Capabilities[0].ID)
}

func TestWriteGraph_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, shopGraph(), FormatTable))
	out := buf.String()

	assert.Contains(t, out, "shop")
	assert.Contains(t, out, "web shop checkout")
	assert.Contains(t, out, "cart.add")
	assert.Contains(t, out, "Checkout")
	// Parameter markers: required (*), on-demand (~), sensitive (!).
	assert.Contains(t, out, "itemId:string*")
	assert.Contains(t, out, "cvv:string*~!")
}

func TestWriteGraph_TableWithoutCapabilities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, api.CapabilityGraph{Application: "shop"}, FormatTable))

	assert.Contains(t, buf.String(), "No capabilities declared")
}

func TestParameterColumn_JoinsWithNewlines(t *testing.T) {
	cell := parameterColumn([]api.ParameterSummary{
		{Name: "a", Type: api.TypeString, Required: true},
		{Name: "b", Type: api.TypeBoolean},
	})
	assert.Equal(t, "a:string*\nb:boolean", cell)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 60))

	long := truncate(string(make([]byte, 100)), 60)
	assert.Len(t, long, 60)
	assert.Equal(t, "...", long[57:])
}

// Package formatting renders the capability graph for the CLI in table,
// JSON or YAML form.
package formatting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"conductor/internal/api"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how the CLI renders results.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// ParseFormat maps a CLI flag value to an OutputFormat.
func ParseFormat(value string) (OutputFormat, error) {
	switch OutputFormat(value) {
	case FormatTable, FormatJSON, FormatYAML:
		return OutputFormat(value), nil
	default:
		return "", fmt.Errorf("unknown output format '%s' (want table, json or yaml)", value)
	}
}

// WriteGraph renders the capability graph to w in the requested format.
func WriteGraph(w io.Writer, graph api.CapabilityGraph, format OutputFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(graph)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(graph)
	default:
		writeGraphTable(w, graph)
		return nil
	}
}

func writeGraphTable(w io.Writer, graph api.CapabilityGraph) {
	if graph.Application != "" {
		fmt.Fprintf(w, "%s", text.FgHiCyan.Sprint(graph.Application))
		if graph.Description != "" {
			fmt.Fprintf(w, ": %s", graph.Description)
		}
		fmt.Fprintln(w)
	}
	if len(graph.Capabilities) == 0 {
		fmt.Fprintln(w, text.FgYellow.Sprint("No capabilities declared"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ID"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("PARAMETERS"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
	})
	for _, capability := range graph.Capabilities {
		t.AppendRow(table.Row{
			capability.ID,
			capability.DisplayName,
			parameterColumn(capability.Parameters),
			truncate(capability.Description, 60),
		})
	}
	t.Render()
}

// parameterColumn compacts parameter summaries into one cell: name, type,
// and markers for required (*), on-demand (~) and sensitive (!).
func parameterColumn(parameters []api.ParameterSummary) string {
	cells := make([]string, 0, len(parameters))
	for _, p := range parameters {
		cell := fmt.Sprintf("%s:%s", p.Name, p.Type)
		if p.Required {
			cell += "*"
		}
		if p.Collect == api.CollectOnDemand {
			cell += "~"
		}
		if p.Sensitive {
			cell += "!"
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"conductor/internal/api"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handler adapts a downstream MCP tool into an api.Handler. The tool's
// first text content item is parsed as JSON when possible and becomes the
// result payload; an error-flagged result becomes a handler error, which
// the engine classifies as EXECUTION_ERROR.
func Handler(caller ToolCaller, toolName string) api.Handler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		result, err := caller.CallTool(ctx, toolName, params)
		if err != nil {
			return nil, err
		}

		payload := resultPayload(result)
		if result.IsError {
			return nil, fmt.Errorf("tool %s failed: %v", toolName, payload)
		}
		return payload, nil
	}
}

// Checker adapts a downstream MCP tool into an api.Checker. A transport
// error or error-flagged result fails the check; otherwise the payload's
// truthiness decides.
func Checker(caller ToolCaller, toolName string) api.Checker {
	return func(ctx context.Context, execCtx map[string]interface{}) (bool, error) {
		result, err := caller.CallTool(ctx, toolName, execCtx)
		if err != nil {
			return false, err
		}
		if result.IsError {
			return false, nil
		}
		return truthy(resultPayload(result)), nil
	}
}

// resultPayload extracts the payload from a tool result: the first text
// content item parsed as JSON, or its raw text if it is not JSON.
func resultPayload(result *mcp.CallToolResult) interface{} {
	if len(result.Content) == 0 {
		return nil
	}
	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return result.Content[0]
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(textContent.Text), &parsed); err != nil {
		return textContent.Text
	}
	return parsed
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	case float64:
		return v != 0
	case map[string]interface{}:
		// A structured result passes unless it says otherwise.
		if passed, ok := v["passed"].(bool); ok {
			return passed
		}
		if success, ok := v["success"].(bool); ok {
			return success
		}
		return true
	default:
		return true
	}
}

// Bindings maps handler and checker references to downstream tool names.
// A reference absent from the map defaults to a tool of the same name.
type Bindings struct {
	Handlers map[string]string `yaml:"handlers,omitempty" json:"handlers,omitempty"`
	Checkers map[string]string `yaml:"checkers,omitempty" json:"checkers,omitempty"`
}

// HandlerMap builds the handler map for the given references.
func HandlerMap(caller ToolCaller, refs []string, bindings Bindings) map[string]api.Handler {
	handlers := make(map[string]api.Handler, len(refs))
	for _, ref := range refs {
		tool := ref
		if bound, ok := bindings.Handlers[ref]; ok {
			tool = bound
		}
		handlers[ref] = Handler(caller, tool)
	}
	return handlers
}

// CheckerMap builds the checker map for the given references.
func CheckerMap(caller ToolCaller, refs []string, bindings Bindings) map[string]api.Checker {
	checkers := make(map[string]api.Checker, len(refs))
	for _, ref := range refs {
		tool := ref
		if bound, ok := bindings.Checkers[ref]; ok {
			tool = bound
		}
		checkers[ref] = Checker(caller, tool)
	}
	return checkers
}

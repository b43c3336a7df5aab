package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"conductor/internal/api"
	"conductor/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// tools assembles the MCP tool set: catalog discovery plus the three
// execution operations.
func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "capability_list",
				Description: "List the capability graph: every capability the application exposes, with its parameter summary",
				InputSchema: objectSchema(map[string]interface{}{}, nil),
			},
			Handler: s.handleCapabilityList,
		},
		{
			Tool: mcp.Tool{
				Name:        "capability_describe",
				Description: "Describe one capability: parameters, preconditions, side effects and undo capability",
				InputSchema: objectSchema(map[string]interface{}{
					"capability": map[string]interface{}{
						"type":        "string",
						"description": "Capability id to describe",
					},
				}, []string{"capability"}),
			},
			Handler: s.handleCapabilityDescribe,
		},
		{
			Tool: mcp.Tool{
				Name:        "intent_execute",
				Description: "Execute a single intent: validate, gate on preconditions and dispatch one capability",
				InputSchema: objectSchema(map[string]interface{}{
					"capability": map[string]interface{}{
						"type":        "string",
						"description": "Capability id to invoke",
					},
					"parameters": map[string]interface{}{
						"type":        "object",
						"description": "Parameter values for the capability",
					},
					"timeout_ms": map[string]interface{}{
						"type":        "number",
						"description": "Handler deadline override in milliseconds",
					},
					"context": map[string]interface{}{
						"type":        "object",
						"description": "Shared context value bag for preconditions",
					},
				}, []string{"capability"}),
			},
			Handler: s.handleIntentExecute,
		},
		{
			Tool: mcp.Tool{
				Name:        "strategy_execute",
				Description: "Execute an ordered multi-step strategy with optional transactional rollback; may pause for on-demand inputs and return a resume token",
				InputSchema: objectSchema(map[string]interface{}{
					"steps": map[string]interface{}{
						"type":        "array",
						"description": "Ordered steps, each {capability, parameters}",
					},
					"transactional": map[string]interface{}{
						"type":        "boolean",
						"description": "Roll completed steps back in reverse order on failure",
					},
					"continue_on_error": map[string]interface{}{
						"type":        "boolean",
						"description": "Advance past precondition failures instead of aborting",
					},
					"timeout_ms": map[string]interface{}{
						"type":        "number",
						"description": "Per-step handler deadline override in milliseconds",
					},
					"context": map[string]interface{}{
						"type":        "object",
						"description": "Initial shared context",
					},
				}, []string{"steps"}),
			},
			Handler: s.handleStrategyExecute,
		},
		{
			Tool: mcp.Tool{
				Name:        "strategy_resume",
				Description: "Resume a paused strategy with newly collected parameter values; the resume token is single use",
				InputSchema: objectSchema(map[string]interface{}{
					"resume_token": map[string]interface{}{
						"type":        "string",
						"description": "Token returned by the paused strategy result",
					},
					"values": map[string]interface{}{
						"type":        "object",
						"description": "Collected parameter values for the paused step",
					},
				}, []string{"resume_token"}),
			},
			Handler: s.handleStrategyResume,
		},
	}
}

func objectSchema(properties map[string]interface{}, required []string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func requestArgs(req mcp.CallToolRequest) map[string]interface{} {
	if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
		return argsMap
	}
	return map[string]interface{}{}
}

// jsonResult marshals a payload into a text tool result. isError marks
// failed executions so planners can branch without parsing.
func jsonResult(payload interface{}, isError bool) *mcp.CallToolResult {
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: isError,
	}
}

func (s *Server) handleCapabilityList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	graph := s.engine.Directory().Graph()
	return jsonResult(graph, false), nil
}

func (s *Server) handleCapabilityDescribe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := requestArgs(req)
	id, _ := args["capability"].(string)

	capability, ok := s.engine.Directory().Resolve(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("capability %s not found", id)), nil
	}
	return jsonResult(capability, false), nil
}

func (s *Server) handleIntentExecute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := requestArgs(req)

	intent := api.Intent{CapabilityID: stringArg(args, "capability")}
	if params, ok := args["parameters"].(map[string]interface{}); ok {
		intent.Parameters = params
	}

	opts := api.ExecuteOptions{Timeout: timeoutArg(args)}
	if execCtx, ok := args["context"].(map[string]interface{}); ok {
		opts.Context = execCtx
	}

	result := s.engine.Execute(ctx, intent, opts)
	return jsonResult(result, !result.Success), nil
}

func (s *Server) handleStrategyExecute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := requestArgs(req)

	steps, ok := args["steps"].([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array of {capability, parameters} objects"), nil
	}
	strat := make(api.Strategy, 0, len(steps))
	for i, raw := range steps {
		step, ok := raw.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("step %d is not an object", i)), nil
		}
		intent := api.Intent{CapabilityID: stringArg(step, "capability")}
		if params, ok := step["parameters"].(map[string]interface{}); ok {
			intent.Parameters = params
		}
		strat = append(strat, intent)
	}

	opts := api.StrategyOptions{
		Timeout:         timeoutArg(args),
		Transactional:   boolArg(args, "transactional"),
		ContinueOnError: boolArg(args, "continue_on_error"),
	}
	if execCtx, ok := args["context"].(map[string]interface{}); ok {
		opts.Context = execCtx
	}

	logging.Debug("MCPServer", "strategy_execute with %d steps", len(strat))
	result := s.orchestrator.Execute(ctx, strat, opts)
	return jsonResult(result, !result.Success && !result.Paused), nil
}

func (s *Server) handleStrategyResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := requestArgs(req)

	token := stringArg(args, "resume_token")
	values, _ := args["values"].(map[string]interface{})

	result := s.orchestrator.Resume(ctx, token, values)
	return jsonResult(result, !result.Success && !result.Paused), nil
}

func stringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

func boolArg(args map[string]interface{}, key string) bool {
	value, _ := args[key].(bool)
	return value
}

func timeoutArg(args map[string]interface{}) time.Duration {
	ms, ok := args["timeout_ms"].(float64)
	if !ok || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockToolCaller implements ToolCaller for testing
type mockToolCaller struct {
	calls  []toolCall
	result *mcp.CallToolResult
	err    error
}

type toolCall struct {
	toolName string
	args     map[string]interface{}
}

func (m *mockToolCaller) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	m.calls = append(m.calls, toolCall{toolName: name, args: args})
	return m.result, m.err
}

func (m *mockToolCaller) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	return nil, nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
		IsError: isError,
	}
}

func TestHandler_ParsesJSONPayload(t *testing.T) {
	mock := &mockToolCaller{result: textResult(`{"data": {"orderId": "o-1"}}`, false)}
	handler := Handler(mock, "place_order")

	value, err := handler(context.Background(), map[string]interface{}{"itemId": "item-1"})
	require.NoError(t, err)

	payload, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"orderId": "o-1"}, payload["data"])

	require.Len(t, mock.calls, 1)
	assert.Equal(t, "place_order", mock.calls[0].toolName)
	assert.Equal(t, "item-1", mock.calls[0].args["itemId"])
}

func TestHandler_NonJSONTextPassedThrough(t *testing.T) {
	mock := &mockToolCaller{result: textResult("order placed", false)}
	handler := Handler(mock, "place_order")

	value, err := handler(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "order placed", value)
}

func TestHandler_ErrorFlaggedResultBecomesError(t *testing.T) {
	mock := &mockToolCaller{result: textResult(`"out of stock"`, true)}
	handler := Handler(mock, "place_order")

	_, err := handler(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool place_order failed")
	assert.Contains(t, err.Error(), "out of stock")
}

func TestHandler_TransportErrorPropagates(t *testing.T) {
	mock := &mockToolCaller{err: errors.New("broken pipe")}
	handler := Handler(mock, "place_order")

	_, err := handler(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestChecker_Truthiness(t *testing.T) {
	tests := []struct {
		name   string
		result *mcp.CallToolResult
		want   bool
	}{
		{"bool true", textResult(`true`, false), true},
		{"bool false", textResult(`false`, false), false},
		{"passed field wins", textResult(`{"passed": false, "detail": "cart empty"}`, false), false},
		{"success field wins", textResult(`{"success": true}`, false), true},
		{"structured default passes", textResult(`{"count": 3}`, false), true},
		{"zero number fails", textResult(`0`, false), false},
		{"nonzero number passes", textResult(`1`, false), true},
		{"empty content fails", &mcp.CallToolResult{}, false},
		{"error flag fails", textResult(`true`, true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockToolCaller{result: tt.result}
			checker := Checker(mock, "cart_not_empty")

			passed, err := checker(context.Background(), map[string]interface{}{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, passed)
		})
	}
}

func TestChecker_TransportErrorFailsCheck(t *testing.T) {
	mock := &mockToolCaller{err: errors.New("connection reset")}
	checker := Checker(mock, "cart_not_empty")

	passed, err := checker(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, passed)
}

func TestHandlerMap_BindingsAndDefaults(t *testing.T) {
	mock := &mockToolCaller{result: textResult(`"ok"`, false)}

	handlers := HandlerMap(mock, []string{"cart.add", "cart.remove"}, Bindings{
		Handlers: map[string]string{"cart.add": "cart_add_tool"},
	})
	require.Len(t, handlers, 2)

	_, err := handlers["cart.add"](context.Background(), nil)
	require.NoError(t, err)
	_, err = handlers["cart.remove"](context.Background(), nil)
	require.NoError(t, err)

	// Bound reference uses the mapped tool name, unbound falls back to the
	// reference itself.
	require.Len(t, mock.calls, 2)
	assert.Equal(t, "cart_add_tool", mock.calls[0].toolName)
	assert.Equal(t, "cart.remove", mock.calls[1].toolName)
}

func TestCheckerMap_Bindings(t *testing.T) {
	mock := &mockToolCaller{result: textResult(`true`, false)}

	checkers := CheckerMap(mock, []string{"userLoggedIn"}, Bindings{
		Checkers: map[string]string{"userLoggedIn": "auth_check"},
	})
	require.Len(t, checkers, 1)

	passed, err := checkers["userLoggedIn"](context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, passed)
	assert.Equal(t, "auth_check", mock.calls[0].toolName)
}

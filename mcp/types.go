package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// envelope is the common shape of every successful tool result:
// {"status": ..., "message": ..., extra fields}.
type envelope map[string]interface{}

// newEnvelope starts a success envelope with a human-readable message.
func newEnvelope(status, message string) envelope {
	return envelope{
		"status":  status,
		"message": message,
	}
}

// With adds a field and returns the envelope for chaining.
func (e envelope) With(key string, value interface{}) envelope {
	e[key] = value
	return e
}

// Result marshals the envelope into an MCP text result.
func (e envelope) Result() *mcp.CallToolResult {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// errorResult marshals a ToolError into an MCP error result so the caller
// always receives structured JSON, never a transport failure.
func errorResult(toolErr *ToolError) *mcp.CallToolResult {
	payload := map[string]interface{}{
		"status": "error",
		"error":  toolErr,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(toolErr.Error())
	}
	return mcp.NewToolResultError(string(data))
}

// txReport is the standard per-transaction block attached to write results.
type txReport struct {
	Hash        string `json:"hash"`
	ExplorerURL string `json:"explorer_url"`
}

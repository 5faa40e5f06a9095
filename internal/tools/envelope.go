package tools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

const logSubsystem = "OCITools"

// timestamp produces the UTC RFC3339 instant stamped into every envelope.
func (ot *OCITools) timestamp() string {
	return ot.now().UTC().Format(time.RFC3339)
}

// jsonResult marshals an envelope into the tool result. Envelopes are the
// contract with the caller; marshal failures would indicate a programming
// error in the payload types.
func jsonResult(payload map[string]interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal result: %v", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
	}, nil
}

// failure builds the standard failure envelope. Extra fields (ids, filters)
// are merged in so callers can correlate the failure with their request.
func (ot *OCITools) failure(summary string, err error, extra map[string]interface{}) (*mcp.CallToolResult, error) {
	payload := map[string]interface{}{
		"success":      false,
		"summary":      summary,
		"error":        err.Error(),
		"retrieved_at": ot.timestamp(),
	}
	for k, v := range extra {
		payload[k] = v
	}
	return jsonResult(payload)
}

// argumentsMap extracts the raw arguments object from a request.
func argumentsMap(req mcp.CallToolRequest) map[string]interface{} {
	if args, ok := req.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return nil
}

// optionalString returns the string argument or the default when absent or
// empty.
func optionalString(req mcp.CallToolRequest, key, defaultValue string) string {
	if v, ok := argumentsMap(req)[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

// optionalBool returns the boolean argument or the default when absent.
func optionalBool(req mcp.CallToolRequest, key string, defaultValue bool) bool {
	if v, ok := argumentsMap(req)[key].(bool); ok {
		return v
	}
	return defaultValue
}

// optionalInt returns the numeric argument or the default when absent. JSON
// numbers arrive as float64.
func optionalInt(req mcp.CallToolRequest, key string, defaultValue int) int {
	switch v := argumentsMap(req)[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return defaultValue
	}
}

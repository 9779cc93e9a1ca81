// Package protocol defines the JSON-RPC 2.0 structures and MCP constants
// used to talk to a tool server over its standard streams.
package protocol

import (
	"encoding/json"
	"fmt"
)

// ErrorPayload is the 'error' object of a JSON-RPC error response.
type ErrorPayload struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSONRPCRequest represents a standard JSON-RPC request object.
type JSONRPCRequest struct {
	JSONRPC string      `json:"jsonrpc"` // MUST be "2.0"
	ID      interface{} `json:"id"`      // Request ID (string, number, or null)
	Method  string      `json:"method"`  // Method name (e.g., "initialize", "tools/call")
	Params  interface{} `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard JSON-RPC response object.
// Result is kept raw so callers decode it into the payload type the
// method calls for.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"` // MUST match the request ID (null if error before ID parsing)
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ErrorPayload   `json:"error,omitempty"`
}

// JSONRPCNotification represents a standard JSON-RPC notification object.
// Notifications MUST NOT have an 'id' field.
type JSONRPCNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// NewRequest creates a new JSON-RPC request object.
func NewRequest(id interface{}, method string, params interface{}) *JSONRPCRequest {
	return &JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// NewNotification creates a new JSON-RPC notification object.
func NewNotification(method string, params interface{}) *JSONRPCNotification {
	return &JSONRPCNotification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	}
}

// UnmarshalResult decodes a response's raw result into target.
// A missing or null result is an error: the methods the client issues
// all carry a result payload on success.
func UnmarshalResult(result json.RawMessage, target interface{}) error {
	if len(result) == 0 || string(result) == "null" {
		return fmt.Errorf("result payload is empty")
	}
	if err := json.Unmarshal(result, target); err != nil {
		return fmt.Errorf("failed to unmarshal result into %T: %w", target, err)
	}
	return nil
}

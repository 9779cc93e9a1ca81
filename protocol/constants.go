package protocol

const (
	// ProtocolVersion is the MCP version this client speaks. It matches the
	// 2024-11-05 schema, which is what the reference Python servers emit.
	ProtocolVersion = "2024-11-05"

	// --- Method name constants (JSON-RPC 'method' field) ---

	// Initialization
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized" // Notification

	// Tools
	MethodListTools = "tools/list"
	MethodCallTool  = "tools/call"

	// Ping
	MethodPing = "ping"
)

// ErrorCode is a JSON-RPC 2.0 error code.
type ErrorCode int

// Standard JSON-RPC 2.0 error codes.
const (
	ErrorCodeParseError     ErrorCode = -32700
	ErrorCodeInvalidRequest ErrorCode = -32600
	ErrorCodeMethodNotFound ErrorCode = -32601
	ErrorCodeInvalidParams  ErrorCode = -32602
	ErrorCodeInternalError  ErrorCode = -32603
)

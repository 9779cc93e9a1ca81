package protocol

import "fmt"

// RPCError wraps ErrorPayload to implement the error interface.
// The client returns this type when the server answers a request with a
// JSON-RPC error object.
type RPCError struct {
	ErrorPayload
}

// Error implements the error interface for RPCError.
func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error: code=%d, message=%s", e.Code, e.Message)
}

// NewRPCError creates an RPCError from a response error payload.
func NewRPCError(payload *ErrorPayload) *RPCError {
	return &RPCError{ErrorPayload: *payload}
}

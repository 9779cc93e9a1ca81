package host

import (
	"errors"
	"fmt"

	"github.com/localrivet/mcpchat/protocol"
)

// Standard error values usable with errors.Is().
var (
	ErrNotInitialized  = errors.New("session is not initialized")
	ErrInvalidResponse = errors.New("invalid response from server")
)

// ServerError is returned when the tool server answers a request with a
// JSON-RPC error object. It wraps the underlying protocol.RPCError, so
// errors.As reaches both types.
type ServerError struct {
	Method  string
	Code    protocol.ErrorCode
	Message string

	cause *protocol.RPCError
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error during %s (code=%d): %s", e.Method, e.Code, e.Message)
}

// Unwrap exposes the wrapped RPC error.
func (e *ServerError) Unwrap() error {
	return e.cause
}

func newServerError(method string, payload *protocol.ErrorPayload) *ServerError {
	return &ServerError{
		Method:  method,
		Code:    payload.Code,
		Message: payload.Message,
		cause:   protocol.NewRPCError(payload),
	}
}

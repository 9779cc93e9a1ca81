// Package host provides the client side of the tool server connection:
// the initialize handshake, tool listing, and tool invocation over a
// JSON-RPC transport.
package host

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/localrivet/mcpchat/protocol"
)

// Transport moves framed JSON-RPC messages to and from the tool server.
// Implemented by transport/stdio.Transport; tests substitute a scripted
// fake.
type Transport interface {
	Send(data []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}

// defaultRequestTimeout bounds one request/response exchange. The
// reference behavior left calls unbounded; a hung tool server should not
// hang the whole session.
const defaultRequestTimeout = 30 * time.Second

// Session owns the single connection to the tool server for the life of
// the process. It is constructed once at startup and passed explicitly to
// whoever needs tools; there is no package-level state.
type Session struct {
	transport      Transport
	logger         *slog.Logger
	clientInfo     protocol.Implementation
	requestTimeout time.Duration

	mu          sync.Mutex // serializes wire exchanges
	initialized bool
	serverInfo  protocol.Implementation
}

// New creates a session over the given transport. Initialize must be
// called before any tool operation.
func New(transport Transport, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		clientInfo: protocol.Implementation{
			Name:    "mcpchat",
			Version: "1.0.0",
		},
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize performs the MCP handshake: the initialize request followed
// by the initialized notification. It must complete once before ListTools
// or CallTool.
func (s *Session) Initialize(ctx context.Context) error {
	params := protocol.InitializeParams{
		ProtocolVersion: protocol.ProtocolVersion,
		Capabilities:    protocol.ClientCapabilities{},
		ClientInfo:      s.clientInfo,
	}

	var result protocol.InitializeResult
	if err := s.roundTrip(ctx, protocol.MethodInitialize, params, &result); err != nil {
		return fmt.Errorf("initialize handshake failed: %w", err)
	}

	note := protocol.NewNotification(protocol.MethodInitialized, protocol.InitializedParams{})
	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal initialized notification: %w", err)
	}
	if err := s.transport.Send(data); err != nil {
		return fmt.Errorf("failed to send initialized notification: %w", err)
	}

	s.mu.Lock()
	s.initialized = true
	s.serverInfo = result.ServerInfo
	s.mu.Unlock()

	s.logger.Info("connected to tool server",
		"server", result.ServerInfo.Name,
		"version", result.ServerInfo.Version,
		"protocol", result.ProtocolVersion)
	return nil
}

// ServerInfo reports the identity the server declared during the
// handshake. Zero value before Initialize.
func (s *Session) ServerInfo() protocol.Implementation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverInfo
}

// Ping checks that the server is still responsive.
func (s *Session) Ping(ctx context.Context) error {
	var result map[string]interface{}
	return s.roundTrip(ctx, protocol.MethodPing, struct{}{}, &result)
}

// ListTools fetches the server's current tool catalog.
func (s *Session) ListTools(ctx context.Context) ([]protocol.Tool, error) {
	if !s.isInitialized() {
		return nil, ErrNotInitialized
	}
	var result protocol.ListToolsResult
	if err := s.roundTrip(ctx, protocol.MethodListTools, protocol.ListToolsParams{}, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes one tool and resolves its result content into a
// ToolOutput. A tool-reported failure (isError) comes back as an error
// whose message carries the tool's own text.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]interface{}) (ToolOutput, error) {
	if !s.isInitialized() {
		return ToolOutput{}, ErrNotInitialized
	}

	params := protocol.CallToolParams{Name: name, Arguments: args}
	var result protocol.CallToolResult
	if err := s.roundTrip(ctx, protocol.MethodCallTool, params, &result); err != nil {
		return ToolOutput{}, err
	}

	output := ResolveOutput(result.Content)
	if result.IsError {
		return output, fmt.Errorf("tool %q reported an error: %s", name, output.Text())
	}
	return output, nil
}

// Close releases the transport and the subprocess behind it.
func (s *Session) Close() error {
	return s.transport.Close()
}

func (s *Session) isInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// roundTrip sends one request and blocks until the matching response
// arrives, decoding its result into target. Notifications the server
// interleaves are logged and skipped; responses with a foreign ID are
// discarded.
func (s *Session) roundTrip(ctx context.Context, method string, params, target interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	id := uuid.NewString()
	req := protocol.NewRequest(id, method, params)
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	s.logger.Debug("sending request", "method", method, "id", id)
	if err := s.transport.Send(data); err != nil {
		return fmt.Errorf("failed to send %s request: %w", method, err)
	}

	for {
		raw, err := s.transport.Receive(ctx)
		if err != nil {
			return fmt.Errorf("failed to receive %s response: %w", method, err)
		}

		var resp protocol.JSONRPCResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}

		if resp.ID == nil {
			// Server-initiated notification; not for us.
			var note protocol.JSONRPCNotification
			if err := json.Unmarshal(raw, &note); err == nil && note.Method != "" {
				s.logger.Debug("skipping server notification", "method", note.Method)
			}
			continue
		}
		if idStr, ok := resp.ID.(string); !ok || idStr != id {
			s.logger.Warn("discarding response with unexpected id", "got", resp.ID, "want", id)
			continue
		}

		if resp.Error != nil {
			return newServerError(method, resp.Error)
		}
		if err := protocol.UnmarshalResult(resp.Result, target); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return nil
	}
}

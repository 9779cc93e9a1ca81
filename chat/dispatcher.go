package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/localrivet/mcpchat/host"
	"github.com/localrivet/mcpchat/protocol"
)

// ToolHost is the slice of the tool server session the chat layer needs.
// Implemented by *host.Session; tests substitute a fake.
type ToolHost interface {
	ListTools(ctx context.Context) ([]protocol.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]interface{}) (host.ToolOutput, error)
}

// ToolResult is the outcome of dispatching one model-issued tool call.
// Text always carries something presentable: the tool's output on
// success, a bracketed error sentinel on failure. Err makes the failure
// branch visible to the caller without changing what gets appended.
type ToolResult struct {
	CallID string
	Tool   string
	Args   string // compact argument rendering for the trace line
	Text   string
	Err    error
}

// Failed reports whether the call ended in a parse or execution error.
func (r ToolResult) Failed() bool { return r.Err != nil }

// Dispatcher executes model-issued tool calls against the tool server.
// No failure crosses this boundary as an error-return-free panic or an
// unhandled error: a broken call becomes a ToolResult with error text,
// and the rest of the batch keeps going.
type Dispatcher struct {
	host   ToolHost
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given tool host.
func NewDispatcher(h ToolHost, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{host: h, logger: logger}
}

// Invoke runs one tool call to completion. The argument blob is parsed
// first; a blob that is not a JSON object never reaches the tool server.
func (d *Dispatcher) Invoke(ctx context.Context, call openai.ToolCall) ToolResult {
	name := call.Function.Name
	result := ToolResult{
		CallID: call.ID,
		Tool:   name,
		Args:   call.Function.Arguments,
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		result.Err = err
		result.Text = fmt.Sprintf("[Error parsing arguments for %s: %v]", name, err)
		return result
	}
	if compacted, err := json.Marshal(args); err == nil {
		result.Args = string(compacted)
	}

	d.logger.Debug("calling tool", "tool", name, "args", result.Args)
	output, err := d.host.CallTool(ctx, name, args)
	if err != nil {
		result.Err = err
		result.Text = fmt.Sprintf("[Tool execution error: %v]", err)
		return result
	}

	result.Text = output.Text()
	return result
}

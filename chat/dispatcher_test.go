package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/mcpchat/host"
	"github.com/localrivet/mcpchat/protocol"
)

// fakeToolHost records tool calls and answers from a scripted function.
type fakeToolHost struct {
	mu     sync.Mutex
	tools  []protocol.Tool
	callFn func(name string, args map[string]interface{}) (host.ToolOutput, error)
	calls  []string
}

func (f *fakeToolHost) ListTools(ctx context.Context) ([]protocol.Tool, error) {
	return f.tools, nil
}

func (f *fakeToolHost) CallTool(ctx context.Context, name string, args map[string]interface{}) (host.ToolOutput, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if f.callFn == nil {
		return host.ResolveOutput(json.RawMessage(`"ok"`)), nil
	}
	return f.callFn(name, args)
}

func (f *fakeToolHost) calledTools() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func textOutput(text string) host.ToolOutput {
	raw, _ := json.Marshal([]protocol.Content{protocol.NewTextContent(text)})
	return host.ResolveOutput(raw)
}

func toolCall(id, name, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:   id,
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestInvokeSuccess(t *testing.T) {
	th := &fakeToolHost{
		callFn: func(name string, args map[string]interface{}) (host.ToolOutput, error) {
			assert.Equal(t, "get_weather", name)
			assert.Equal(t, "Paris", args["city"])
			return textOutput("Sunny, 18C"), nil
		},
	}
	d := NewDispatcher(th, nil)

	result := d.Invoke(context.Background(), toolCall("call-1", "get_weather", `{"city":"Paris"}`))

	assert.False(t, result.Failed())
	assert.Equal(t, "call-1", result.CallID)
	assert.Equal(t, "get_weather", result.Tool)
	assert.Equal(t, "Sunny, 18C", result.Text)
	assert.JSONEq(t, `{"city":"Paris"}`, result.Args)
}

func TestInvokeMalformedArguments(t *testing.T) {
	th := &fakeToolHost{}
	d := NewDispatcher(th, nil)

	result := d.Invoke(context.Background(), toolCall("call-1", "get_weather", "not-json"))

	assert.True(t, result.Failed())
	assert.True(t, strings.HasPrefix(result.Text, "[Error parsing arguments for get_weather:"),
		"unexpected text: %q", result.Text)
	assert.Empty(t, th.calledTools(), "tool must not be invoked when arguments do not parse")
	// The raw blob survives for the trace line.
	assert.Equal(t, "not-json", result.Args)
}

func TestInvokeExecutionFailure(t *testing.T) {
	th := &fakeToolHost{
		callFn: func(name string, args map[string]interface{}) (host.ToolOutput, error) {
			return host.ToolOutput{}, errors.New("connection reset by peer")
		},
	}
	d := NewDispatcher(th, nil)

	result := d.Invoke(context.Background(), toolCall("call-1", "get_weather", `{}`))

	assert.True(t, result.Failed())
	assert.Equal(t, "[Tool execution error: connection reset by peer]", result.Text)
}

func TestInvokeEmptyObjectArguments(t *testing.T) {
	th := &fakeToolHost{
		callFn: func(name string, args map[string]interface{}) (host.ToolOutput, error) {
			assert.Empty(t, args)
			return textOutput("done"), nil
		},
	}
	d := NewDispatcher(th, nil)

	result := d.Invoke(context.Background(), toolCall("call-1", "no_args_tool", `{}`))
	require.False(t, result.Failed())
	assert.Equal(t, "done", result.Text)
}

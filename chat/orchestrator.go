package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the slice of the completion API the orchestrator needs.
// Satisfied by *openai.Client; tests substitute a scripted fake.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Orchestrator drives one query turn: first completion round with the
// current tool catalog attached, dispatch of whatever tool calls the
// model issues, and a second round over the updated history to compose
// the final answer. A turn makes at most two completion requests; the
// second happens only when the first produced tool calls.
type Orchestrator struct {
	backend    Completer
	host       ToolHost
	dispatcher *Dispatcher
	model      string
	maxTokens  int
	logger     *slog.Logger
}

// NewOrchestrator wires an orchestrator over the completion backend and
// the tool server session.
func NewOrchestrator(backend Completer, h ToolHost, model string, maxTokens int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		backend:    backend,
		host:       h,
		dispatcher: NewDispatcher(h, logger),
		model:      model,
		maxTokens:  maxTokens,
		logger:     logger,
	}
}

// ProcessQuery runs one user query to completion and returns the
// composed answer: direct assistant text, or tool-call trace lines and
// results followed by the model's reading of them. Each turn starts a
// fresh conversation. Backend failures return an error; tool failures
// never do — they surface inline as error text.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string) (string, error) {
	conv := NewConversation()
	conv.AppendUser(query)

	// The catalog is re-fetched every turn so a server that grows or
	// drops tools between queries is always advertised accurately.
	tools, err := o.host.ListTools(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list tools: %w", err)
	}

	resp, err := o.backend.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:      o.model,
		Messages:   conv.Snapshot(),
		Tools:      ToOpenAITools(tools),
		ToolChoice: "auto",
		MaxTokens:  o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response carried no choices")
	}
	reply := resp.Choices[0].Message

	var buffer []string
	if reply.Content != "" {
		buffer = append(buffer, reply.Content)
	}

	if len(reply.ToolCalls) == 0 {
		return strings.Join(buffer, "\n"), nil
	}

	// Record the assistant turn verbatim: the backend pairs each later
	// tool-role message against these tool-call IDs by position and ID.
	conv.AppendAssistant(reply)

	for _, call := range reply.ToolCalls {
		result := o.dispatcher.Invoke(ctx, call)
		if result.Failed() {
			o.logger.Warn("tool call failed",
				"tool", result.Tool,
				"call_id", result.CallID,
				"error", result.Err)
		}
		conv.AppendToolResult(result.CallID, result.Text)
		buffer = append(buffer,
			fmt.Sprintf("[Called tool '%s' with args %s]", result.Tool, result.Args),
			result.Text)
	}

	// Second round reads the tool results; no tools attached, so the
	// model cannot chain further calls within this turn.
	finalResp, err := o.backend.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		Messages:  conv.Snapshot(),
		MaxTokens: o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("follow-up completion failed: %w", err)
	}
	if len(finalResp.Choices) > 0 && finalResp.Choices[0].Message.Content != "" {
		buffer = append(buffer, finalResp.Choices[0].Message.Content)
	}

	return strings.Join(buffer, "\n"), nil
}

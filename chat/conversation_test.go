package chat

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationPreservesAppendOrder(t *testing.T) {
	conv := NewConversation()

	conv.AppendUser("What's the weather in Paris?")
	conv.AppendAssistant(openai.ChatCompletionMessage{
		Content: "Let me check.",
		ToolCalls: []openai.ToolCall{{
			ID:   "call-1",
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      "get_weather",
				Arguments: `{"city":"Paris"}`,
			},
		}},
	})
	conv.AppendToolResult("call-1", "Sunny, 18C")
	conv.AppendUser("And in Oslo?")

	snapshot := conv.Snapshot()
	require.Len(t, snapshot, 4)

	assert.Equal(t, openai.ChatMessageRoleUser, snapshot[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, snapshot[1].Role)
	assert.Equal(t, openai.ChatMessageRoleTool, snapshot[2].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, snapshot[3].Role)

	// Pairing: the tool message answers the assistant's tool call.
	require.Len(t, snapshot[1].ToolCalls, 1)
	assert.Equal(t, snapshot[1].ToolCalls[0].ID, snapshot[2].ToolCallID)
	assert.Equal(t, "Sunny, 18C", snapshot[2].Content)
}

func TestConversationAssistantMessageKeptVerbatim(t *testing.T) {
	conv := NewConversation()
	msg := openai.ChatCompletionMessage{
		Content: "",
		ToolCalls: []openai.ToolCall{
			{ID: "a", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: "one", Arguments: "{}"}},
			{ID: "b", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: "two", Arguments: `{"x":1}`}},
		},
	}
	conv.AppendAssistant(msg)

	got := conv.Snapshot()[0]
	require.Len(t, got.ToolCalls, 2)
	assert.Equal(t, "a", got.ToolCalls[0].ID)
	assert.Equal(t, "b", got.ToolCalls[1].ID)
	assert.Equal(t, `{"x":1}`, got.ToolCalls[1].Function.Arguments)
}

func TestSnapshotIsACopy(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("hello")

	snapshot := conv.Snapshot()
	snapshot[0].Content = "tampered"

	assert.Equal(t, "hello", conv.Snapshot()[0].Content)
	assert.Equal(t, 1, conv.Len())
}

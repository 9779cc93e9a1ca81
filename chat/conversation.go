package chat

import (
	openai "github.com/sashabaranov/go-openai"
)

// Conversation is the ordered, append-only message log for one query
// turn. Position is meaning: the backend reads append order as turn
// order and as the tool-call/tool-result pairing signal, so there is no
// way to delete, mutate, or reorder entries. One turn has exactly one
// owner, so access is not synchronized.
type Conversation struct {
	messages []openai.ChatCompletionMessage
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// AppendUser appends a user message.
func (c *Conversation) AppendUser(text string) {
	c.messages = append(c.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})
}

// AppendAssistant appends an assistant message, preserving its content
// and tool-call list verbatim. The IDs inside ToolCalls are what later
// tool results pair against.
func (c *Conversation) AppendAssistant(msg openai.ChatCompletionMessage) {
	c.messages = append(c.messages, openai.ChatCompletionMessage{
		Role:      openai.ChatMessageRoleAssistant,
		Content:   msg.Content,
		ToolCalls: msg.ToolCalls,
	})
}

// AppendToolResult appends a tool-role message answering the tool call
// with the given ID.
func (c *Conversation) AppendToolResult(toolCallID, text string) {
	c.messages = append(c.messages, openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    text,
		ToolCallID: toolCallID,
	})
}

// Snapshot returns a copy of the history in exact append order.
func (c *Conversation) Snapshot() []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len reports the number of messages appended so far.
func (c *Conversation) Len() int {
	return len(c.messages)
}

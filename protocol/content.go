package protocol

import (
	"encoding/json"
	"fmt"
)

// --- Content structures ---

// Content type tags.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

// Content is the interface for the content parts of a tool result.
type Content interface {
	ContentType() string
}

// TextContent represents textual content.
type TextContent struct {
	Type string `json:"type"` // Always "text"
	Text string `json:"text"`
}

func (tc TextContent) ContentType() string { return tc.Type }

// ImageContent represents base64-encoded image content.
type ImageContent struct {
	Type     string `json:"type"` // Always "image"
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

func (ic ImageContent) ContentType() string { return ic.Type }

// NewTextContent creates a text content part.
func NewTextContent(text string) TextContent {
	return TextContent{Type: ContentTypeText, Text: text}
}

// DecodeContent decodes a raw content array into typed parts, dispatching
// on each item's type tag. Any item outside the known part shapes is an
// error; callers handling looser server output fall back to their own
// decoding when this fails.
func DecodeContent(raw json.RawMessage) ([]Content, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err != nil {
		return nil, fmt.Errorf("content is not an array: %w", err)
	}
	parts := make([]Content, 0, len(rawItems))
	for i, rawItem := range rawItems {
		part, err := DecodeContentItem(rawItem)
		if err != nil {
			return nil, fmt.Errorf("content item %d: %w", i, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// DecodeContentItem decodes one content part by its type tag.
func DecodeContentItem(raw json.RawMessage) (Content, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("item carries no type tag: %w", err)
	}

	switch tag.Type {
	case ContentTypeText:
		// Text is probed as a pointer so a part without the attribute is
		// rejected rather than silently read as empty text.
		var probe struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, err
		}
		if probe.Text == nil {
			return nil, fmt.Errorf("text part has no text attribute")
		}
		return TextContent{Type: ContentTypeText, Text: *probe.Text}, nil
	case ContentTypeImage:
		var part ImageContent
		if err := json.Unmarshal(raw, &part); err != nil {
			return nil, err
		}
		return part, nil
	default:
		return nil, fmt.Errorf("unknown content type %q", tag.Type)
	}
}

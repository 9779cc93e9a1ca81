package host

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/localrivet/mcpchat/protocol"
)

// OutputKind identifies the shape a tool result's content arrived in.
// The shape is resolved exactly once, here at the response boundary;
// downstream code only ever sees text.
type OutputKind int

const (
	// OutputText means the content was a bare string.
	OutputText OutputKind = iota
	// OutputItems means the content was an ordered list of parts.
	OutputItems
	// OutputOpaque means the content had some other shape and is carried
	// as its JSON rendering.
	OutputOpaque
)

// OutputItem is one part of an OutputItems result with its text already
// extracted: the part's text attribute when present, its JSON rendering
// otherwise.
type OutputItem struct {
	Type string
	Text string
}

// ToolOutput is the resolved result of one tool invocation.
type ToolOutput struct {
	Kind  OutputKind
	Items []OutputItem // populated for OutputItems

	text string // populated for OutputText and OutputOpaque
}

// Text flattens the output to the single string handed to the model:
// the string itself, the item texts joined with newlines in order, or
// the opaque JSON rendering.
func (o ToolOutput) Text() string {
	if o.Kind != OutputItems {
		return o.text
	}
	parts := make([]string, len(o.Items))
	for i, item := range o.Items {
		parts[i] = item.Text
	}
	return strings.Join(parts, "\n")
}

// contentPart is the loose schema of one content item. Text is a pointer
// so an item without a text attribute is distinguishable from one with
// empty text.
type contentPart struct {
	Type string  `mapstructure:"type"`
	Text *string `mapstructure:"text"`
}

// ResolveOutput classifies raw result content into the tagged union.
// Servers answer tools/call with a bare string, an ordered list of
// content parts, or something else entirely; all three collapse to text
// here and nowhere else.
func ResolveOutput(raw json.RawMessage) ToolOutput {
	if len(raw) == 0 || string(raw) == "null" {
		return ToolOutput{Kind: OutputText, text: ""}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ToolOutput{Kind: OutputText, text: s}
	}

	// Well-formed content lists decode through the typed parts.
	if parts, err := protocol.DecodeContent(raw); err == nil {
		items := make([]OutputItem, 0, len(parts))
		for _, part := range parts {
			items = append(items, partToItem(part))
		}
		return ToolOutput{Kind: OutputItems, Items: items}
	}

	// Anything list-shaped that the typed decoder rejects (bare-string
	// items, unknown part types) still normalizes item by item.
	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err == nil {
		items := make([]OutputItem, 0, len(rawItems))
		for _, rawItem := range rawItems {
			items = append(items, resolveItem(rawItem))
		}
		return ToolOutput{Kind: OutputItems, Items: items}
	}

	return ToolOutput{Kind: OutputOpaque, text: compact(raw)}
}

// partToItem extracts a typed part's text: the text attribute when the
// part has one, its JSON rendering otherwise.
func partToItem(part protocol.Content) OutputItem {
	switch p := part.(type) {
	case protocol.TextContent:
		return OutputItem{Type: p.Type, Text: p.Text}
	default:
		rendered, err := json.Marshal(part)
		if err != nil {
			return OutputItem{Type: part.ContentType()}
		}
		return OutputItem{Type: part.ContentType(), Text: string(rendered)}
	}
}

func resolveItem(raw json.RawMessage) OutputItem {
	// A list item that is itself a bare string contributes itself.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return OutputItem{Text: s}
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return OutputItem{Text: compact(raw)}
	}

	var part contentPart
	if err := mapstructure.Decode(m, &part); err == nil && part.Text != nil {
		return OutputItem{Type: part.Type, Text: *part.Text}
	}
	return OutputItem{Type: part.Type, Text: compact(raw)}
}

// compact renders raw JSON without insignificant whitespace.
func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

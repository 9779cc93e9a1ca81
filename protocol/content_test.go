package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContent(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"text","text":"Sunny, 18C"},
		{"type":"image","data":"aGk=","mimeType":"image/png"}
	]`)

	parts, err := DecodeContent(raw)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	text, ok := parts[0].(TextContent)
	require.True(t, ok)
	assert.Equal(t, ContentTypeText, text.ContentType())
	assert.Equal(t, "Sunny, 18C", text.Text)

	image, ok := parts[1].(ImageContent)
	require.True(t, ok)
	assert.Equal(t, ContentTypeImage, image.ContentType())
	assert.Equal(t, "aGk=", image.Data)
	assert.Equal(t, "image/png", image.MimeType)
}

func TestDecodeContentEmptyText(t *testing.T) {
	parts, err := DecodeContent(json.RawMessage(`[{"type":"text","text":""}]`))
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, TextContent{Type: ContentTypeText, Text: ""}, parts[0])
}

func TestDecodeContentRejectsTextWithoutText(t *testing.T) {
	_, err := DecodeContent(json.RawMessage(`[{"type":"text"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text attribute")
}

func TestDecodeContentRejectsUnknownType(t *testing.T) {
	_, err := DecodeContent(json.RawMessage(`[{"type":"audio","data":"aGk="}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content type")
}

func TestDecodeContentRejectsNonArray(t *testing.T) {
	_, err := DecodeContent(json.RawMessage(`{"type":"text","text":"hi"}`))
	require.Error(t, err)
}

func TestDecodeContentItemRejectsBareString(t *testing.T) {
	_, err := DecodeContentItem(json.RawMessage(`"just a string"`))
	require.Error(t, err)
}

package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolSchemaWireFormat(t *testing.T) {
	tool := Tool{
		Name:        "get_weather",
		Description: "Look up current weather for a city",
		InputSchema: ToolInputSchema{
			Type: "object",
			Properties: map[string]PropertyDetail{
				"city": {Type: "string", Description: "City name"},
			},
			Required: []string{"city"},
		},
	}

	data, err := json.Marshal(tool)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &parsed))

	// The wire key is camelCase per the MCP schema.
	schema, ok := parsed["inputSchema"].(map[string]interface{})
	require.True(t, ok, "inputSchema key missing")
	assert.Equal(t, "object", schema["type"])
}

func TestCallToolResultKeepsContentRaw(t *testing.T) {
	raw := `{"content":[{"type":"text","text":"Sunny, 18C"}],"isError":false}`

	var result CallToolResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	assert.False(t, result.IsError)
	assert.JSONEq(t, `[{"type":"text","text":"Sunny, 18C"}]`, string(result.Content))

	// A bare-string content also survives untouched.
	raw = `{"content":"plain result"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	assert.Equal(t, `"plain result"`, string(result.Content))
}

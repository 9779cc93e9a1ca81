package chat

import (
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"

	"github.com/localrivet/mcpchat/protocol"
)

// ToOpenAITools converts the tool server's catalog into the function-spec
// format the completion API expects. Input schemas are forwarded as-is;
// validating them is the backend's job, and a schema it rejects surfaces
// as a completion error on that turn.
func ToOpenAITools(tools []protocol.Tool) []openai.Tool {
	specs := make([]openai.Tool, 0, len(tools))
	for _, tool := range tools {
		specs = append(specs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  toParameterSchema(tool.InputSchema),
			},
		})
	}
	return specs
}

// toParameterSchema renders a tool's input schema as the loose map the
// openai client marshals. A tool that declares nothing gets the minimal
// empty object schema so the request stays well-formed.
func toParameterSchema(schema protocol.ToolInputSchema) map[string]interface{} {
	fallback := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
	if schema.Type == "" && len(schema.Properties) == 0 {
		return fallback
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return fallback
	}
	var params map[string]interface{}
	if err := json.Unmarshal(data, &params); err != nil || params == nil {
		return fallback
	}
	return params
}

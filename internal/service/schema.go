package service

import "github.com/kdduha/skillscribe/internal/models"

func solutionSchema() *models.Schema {
	return &models.Schema{
		Type: "object",
		Properties: map[string]*models.Schema{
			"explanation": {
				Type:        "string",
				Description: "A simple, clear explanation of why the user's problem is happening, identifying the core concept they are missing.",
			},
			"solution": {
				Type: "object",
				Properties: map[string]*models.Schema{
					"language": {
						Type:        "string",
						Description: "The programming or formula language of the solution (e.g., 'python', 'excel_formula', 'css', 'sql').",
					},
					"code": {
						Type:        "string",
						Description: "The exact code snippet, formula, or query to solve the user's problem, with explanatory comments.",
					},
				},
				Required: []string{"language", "code"},
			},
			"microLesson": {
				Type:        "array",
				Description: "A personalized 3-step micro-lesson to teach the user the underlying concept.",
				Items: &models.Schema{
					Type: "object",
					Properties: map[string]*models.Schema{
						"step":    {Type: "integer", Description: "The step number (1, 2, or 3)."},
						"title":   {Type: "string", Description: "The title of the lesson step."},
						"content": {Type: "string", Description: "The educational content for this step."},
					},
					Required: []string{"step", "title", "content"},
				},
			},
		},
		Required: []string{"explanation", "solution", "microLesson"},
	}
}

// toJSONSchema renders a schema in the strict JSON-schema dialect used by
// OpenAI structured outputs: every object closes additionalProperties.
func toJSONSchema(schema *models.Schema) map[string]any {
	if schema == nil {
		return nil
	}

	out := map[string]any{"type": schema.Type}
	if schema.Description != "" {
		out["description"] = schema.Description
	}
	if schema.Items != nil {
		out["items"] = toJSONSchema(schema.Items)
	}
	if schema.Type == "object" {
		props := make(map[string]any, len(schema.Properties))
		for name, prop := range schema.Properties {
			props[name] = toJSONSchema(prop)
		}
		out["properties"] = props
		out["required"] = schema.Required
		out["additionalProperties"] = false
	}
	return out
}

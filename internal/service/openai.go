package service

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/kdduha/skillscribe/internal/models"
)

const ProviderOpenAI = "openai"

// OpenAIGenerator talks to any OpenAI-compatible chat completions endpoint,
// Gemini's compatibility layer included. The client must be built with
// retries disabled.
type OpenAIGenerator struct {
	client    openai.Client
	modelName string
}

func NewOpenAIGenerator(client openai.Client, modelName string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:    client,
		modelName: modelName,
	}
}

func (g *OpenAIGenerator) Provider() string { return ProviderOpenAI }

func (g *OpenAIGenerator) Model() string { return g.modelName }

func (g *OpenAIGenerator) Generate(ctx context.Context, req *models.GenerateRequest) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, g.buildParams(req))
	if err != nil {
		return "", fmt.Errorf("OpenAI client error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) buildParams(req *models.GenerateRequest) openai.ChatCompletionNewParams {
	imageData := fmt.Sprintf("data:%s;base64,%s", req.Image.MIMEType, req.Image.Base64)

	return openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageData,
				}),
				openai.TextContentPart(req.UserText),
			}),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: toJSONSchema(req.Schema),
					Strict: openai.Bool(true),
				},
			},
		},
	}
}

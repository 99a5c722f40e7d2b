package vertex

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"

	"github.com/kdduha/skillscribe/internal/models"
)

const Provider = "vertex"

// Adapter sends schema-constrained multimodal requests to Gemini on Vertex AI.
type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

func (a *Adapter) Provider() string { return Provider }

func (a *Adapter) Model() string { return a.model }

func (a *Adapter) Generate(ctx context.Context, req *models.GenerateRequest) (string, error) {
	parts, err := buildParts(req)
	if err != nil {
		return "", err
	}

	model := a.client.GenerativeModel(a.model)
	configureModel(model, req)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("vertex client error: %w", err)
	}
	return responseText(resp), nil
}

func configureModel(model *genai.GenerativeModel, req *models.GenerateRequest) {
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = toGenaiSchema(req.Schema)
}

func buildParts(req *models.GenerateRequest) ([]genai.Part, error) {
	data, err := base64.StdEncoding.DecodeString(req.Image.Base64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if req.UserText == "" {
		return nil, fmt.Errorf("vertex generate request has no text")
	}

	return []genai.Part{
		genai.Blob{MIMEType: req.Image.MIMEType, Data: data},
		genai.Text(req.UserText),
	}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	// only the first candidate is requested
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	return text
}

func toGenaiSchema(schema *models.Schema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        toGenaiType(schema.Type),
		Description: schema.Description,
		Required:    schema.Required,
	}

	if schema.Items != nil {
		out.Items = toGenaiSchema(schema.Items)
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for key, value := range schema.Properties {
			out.Properties[key] = toGenaiSchema(value)
		}
	}

	return out
}

func toGenaiType(schemaType string) genai.Type {
	switch schemaType {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}

package vertex

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/skillscribe/internal/models"
)

func TestToGenaiSchema(t *testing.T) {
	in := &models.Schema{
		Type:     "object",
		Required: []string{"steps"},
		Properties: map[string]*models.Schema{
			"steps": {
				Type:        "array",
				Description: "ordered steps",
				Items: &models.Schema{
					Type:       "object",
					Properties: map[string]*models.Schema{"step": {Type: "integer"}},
					Required:   []string{"step"},
				},
			},
		},
	}

	out := toGenaiSchema(in)
	require.NotNil(t, out)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"steps"}, out.Required)

	steps := out.Properties["steps"]
	require.NotNil(t, steps)
	assert.Equal(t, genai.TypeArray, steps.Type)
	assert.Equal(t, "ordered steps", steps.Description)
	assert.Equal(t, genai.TypeInteger, steps.Items.Properties["step"].Type)

	assert.Nil(t, toGenaiSchema(nil))
	assert.Equal(t, genai.TypeUnspecified, toGenaiType("date"))
}

func TestBuildParts(t *testing.T) {
	parts, err := buildParts(&models.GenerateRequest{
		UserText: `User's Problem: "p"`,
		Image:    models.Payload{Base64: "aGVsbG8=", MIMEType: "image/png"},
	})
	require.NoError(t, err)
	require.Len(t, parts, 2)

	blob, ok := parts[0].(genai.Blob)
	require.True(t, ok)
	assert.Equal(t, "image/png", blob.MIMEType)
	assert.Equal(t, []byte("hello"), blob.Data)
	assert.Equal(t, genai.Text(`User's Problem: "p"`), parts[1])
}

func TestBuildPartsInvalidBase64(t *testing.T) {
	_, err := buildParts(&models.GenerateRequest{
		UserText: "x",
		Image:    models.Payload{Base64: "%%%", MIMEType: "image/png"},
	})
	assert.ErrorContains(t, err, "failed to decode base64")
}

func TestConfigureModelStructuredOutput(t *testing.T) {
	model := &genai.GenerativeModel{}
	configureModel(model, &models.GenerateRequest{
		System: "be helpful",
		Schema: &models.Schema{Type: "object"},
	})

	assert.Equal(t, "application/json", model.ResponseMIMEType)
	require.NotNil(t, model.ResponseSchema)
	assert.Equal(t, genai.TypeObject, model.ResponseSchema.Type)
	require.NotNil(t, model.SystemInstruction)
	assert.Equal(t, []genai.Part{genai.Text("be helpful")}, model.SystemInstruction.Parts)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	assert.Equal(t, `{"a":1}`, responseText(resp))
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))
}

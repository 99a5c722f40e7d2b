package encoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/skillscribe/internal/errs"
	"github.com/kdduha/skillscribe/internal/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type failingFile struct{}

func (failingFile) Name() string { return "broken.png" }

func (failingFile) Open() (io.ReadCloser, error) {
	return nil, errors.New("permission denied")
}

func TestEncodePNG(t *testing.T) {
	raw := pngBytes(t)

	payload, err := New().Encode(context.Background(), models.NewMemoryFile("shot.png", raw))
	require.NoError(t, err)

	assert.Equal(t, "image/png", payload.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), payload.Base64)
}

func TestEncodeIgnoresFileName(t *testing.T) {
	raw := pngBytes(t)

	payload, err := New().Encode(context.Background(), models.NewMemoryFile("shot.jpg", raw))
	require.NoError(t, err)
	assert.Equal(t, "image/png", payload.MIMEType)
}

func TestEncodeReadError(t *testing.T) {
	payload, err := New().Encode(context.Background(), failingFile{})

	assert.Nil(t, payload)
	assert.ErrorContains(t, err, "permission denied")
	assert.False(t, errs.IsValidation(err))
}

func TestEncodeRejectsNonImage(t *testing.T) {
	payload, err := New().Encode(context.Background(), models.NewMemoryFile("notes.txt", []byte("just text")))

	assert.Nil(t, payload)
	assert.True(t, errs.IsValidation(err))
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestEncodePDFUsesRenderedPage(t *testing.T) {
	rendered := pngBytes(t)
	enc := &Encoder{renderPDF: func(data []byte) ([]byte, error) {
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		return rendered, nil
	}}

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	payload, err := enc.Encode(context.Background(), models.NewMemoryFile("doc.pdf", pdf))
	require.NoError(t, err)

	assert.Equal(t, "image/png", payload.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(rendered), payload.Base64)
}

func TestEncodePDFRenderError(t *testing.T) {
	enc := &Encoder{renderPDF: func([]byte) ([]byte, error) {
		return nil, errors.New("bad xref")
	}}

	_, err := enc.Encode(context.Background(), models.NewMemoryFile("doc.pdf", []byte("%PDF-1.4\n%%EOF\n")))
	assert.ErrorContains(t, err, "failed to convert pdf: bad xref")
}

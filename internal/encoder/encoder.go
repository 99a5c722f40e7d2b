// Package encoder turns an uploaded file into an inline image payload.
package encoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/go-fitz"

	"github.com/kdduha/skillscribe/internal/errs"
	"github.com/kdduha/skillscribe/internal/metrics"
	"github.com/kdduha/skillscribe/internal/models"
	"github.com/kdduha/skillscribe/pkg/logger"
)

const (
	mimePDF = "application/pdf"
	mimePNG = "image/png"
)

type Encoder struct {
	renderPDF func(data []byte) ([]byte, error)
}

func New() *Encoder {
	return &Encoder{renderPDF: renderFirstPage}
}

// Encode reads the whole file and returns it base64 encoded together with its
// sniffed MIME type. PDFs are sent as a PNG of their first page.
func (e *Encoder) Encode(ctx context.Context, file models.ImageFile) (*models.Payload, error) {
	start := time.Now()
	log := logger.FromContext(ctx).With("file_name", file.Name())

	data, err := readAll(file)
	if err != nil {
		metrics.FilePreprocess("error", "unknown", time.Since(start))
		return nil, fmt.Errorf("failed to read %s: %w", file.Name(), err)
	}

	mimeType := mimetype.Detect(data).String()
	switch {
	case strings.HasPrefix(mimeType, "image/"):
	case mimeType == mimePDF:
		log.Debug("rasterising pdf upload")
		data, err = e.renderPDF(data)
		if err != nil {
			metrics.FilePreprocess("error", mimeType, time.Since(start))
			return nil, fmt.Errorf("failed to convert pdf: %w", err)
		}
		mimeType = mimePNG
	default:
		metrics.FilePreprocess("rejected", mimeType, time.Since(start))
		return nil, errs.NewValidationError(fmt.Sprintf("unsupported file type {%s}", mimeType))
	}

	metrics.FilePreprocess("success", mimeType, time.Since(start))
	return &models.Payload{
		Base64:   base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	}, nil
}

func readAll(file models.ImageFile) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func renderFirstPage(data []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

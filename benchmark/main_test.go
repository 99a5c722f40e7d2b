package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/skillscribe/internal/models"
)

func TestBenchmarkFile(t *testing.T) {
	var got models.SolveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"explanation":"e","solution":{"language":"python","code":"print(1)"},"microLesson":[{"step":1,"title":"a","content":"b"},{"step":2,"title":"a","content":"b"},{"step":3,"title":"a","content":"b"}]}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	cfg := benchConfig{Endpoint: srv.URL, Prompt: "why?"}
	res := benchmarkFile(context.Background(), srv.Client(), cfg, path, "png")

	require.NoError(t, res.Err)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, len("print(1)"), res.CodeLen)
	assert.Equal(t, "why?", got.Prompt)
	assert.Equal(t, "image/png", got.MimeType)
}

func TestBenchmarkFileBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"code":"generation_failed"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	res := benchmarkFile(context.Background(), srv.Client(), benchConfig{Endpoint: srv.URL}, path, "png")
	assert.ErrorContains(t, res.Err, "bad status 502")
}

func TestPrintMarkdown(t *testing.T) {
	results := []BenchResult{
		{Format: "png", Duration: 2 * time.Second, Size: 2048},
		{Format: "png", Duration: 4 * time.Second, Size: 2048},
		{Format: "jpg", Err: assert.AnError},
	}

	var out strings.Builder
	printMarkdown(&out, results)

	assert.Contains(t, out.String(), "| jpg | 0 | 1 | - | - | - |")
	assert.Contains(t, out.String(), "| png | 2 | 0 | 3s | 6s | 2.00 KB |")
	assert.Contains(t, out.String(), "| **ALL** | 2 | 1 | 3s | 6s | 2.00 KB |")
	assert.Less(t, strings.Index(out.String(), "| jpg"), strings.Index(out.String(), "| png"))
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.50 KB", humanBytes(1536))
	assert.Equal(t, "2.00 MB", humanBytes(2<<20))
}

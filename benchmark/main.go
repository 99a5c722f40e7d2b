package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/caarlos0/env/v11"
	"github.com/gabriel-vasile/mimetype"

	"github.com/kdduha/skillscribe/internal/models"
	"github.com/kdduha/skillscribe/pkg/logger"
)

var formatDirs = []string{"png", "jpg", "pdf"}

func main() {
	log := logger.New("info", "development")

	var cfg benchConfig
	if err := env.Parse(&cfg); err != nil {
		log.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: cfg.Timeout}

	var results []BenchResult
	for _, format := range formatDirs {
		dataPath := filepath.Join(cfg.DataDir, format)

		files, _ := os.ReadDir(dataPath)
		for _, file := range files {
			res := benchmarkFile(ctx, client, cfg, filepath.Join(dataPath, file.Name()), format)
			if res.Err != nil {
				log.Error("request failed", "file", res.File, "error", res.Err)
			} else {
				log.Info("ok", "file", res.File, "duration", res.Duration, "steps", res.Steps)
			}
			results = append(results, res)
		}
	}

	printMarkdown(os.Stdout, results)
}

func benchmarkFile(ctx context.Context, client *http.Client, cfg benchConfig, filePath, format string) BenchResult {
	res := BenchResult{File: filepath.Base(filePath), Format: format}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		res.Err = err
		return res
	}
	res.Size = int64(len(raw))

	start := time.Now()
	solution, err := solve(ctx, client, cfg.Endpoint, models.SolveRequest{
		Prompt:      cfg.Prompt,
		ImageBase64: base64.StdEncoding.EncodeToString(raw),
		MimeType:    mimetype.Detect(raw).String(),
	})
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}

	res.Steps = len(solution.MicroLesson)
	res.CodeLen = len(solution.Solution.Code)
	return res
}

func solve(ctx context.Context, client *http.Client, endpoint string, req models.SolveRequest) (*models.Solution, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var solution models.Solution
	if err := sonic.Unmarshal(b, &solution); err != nil {
		return nil, fmt.Errorf("decode solution: %w", err)
	}
	return &solution, nil
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		a := m[r.Format]
		if r.Err != nil {
			a.Failed++
			m[r.Format] = a
			continue
		}
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		m[r.Format] = a
	}
	return m
}

func printMarkdown(w io.Writer, results []BenchResult) {
	fmt.Fprint(w, "\n## Benchmark Results\n\n")
	fmt.Fprintln(w, "| Format | Requests | Failed | Avg Time | Total Time | Avg File Size |")
	fmt.Fprintln(w, "|--------|----------|--------|----------|------------|---------------|")

	agg := aggregate(results)

	var (
		totalCount    int
		totalFailed   int
		totalDuration time.Duration
		totalBytes    int64
	)

	for _, format := range slices.Sorted(maps.Keys(agg)) {
		a := agg[format]
		totalFailed += a.Failed
		if a.Count == 0 {
			fmt.Fprintf(w, "| %s | 0 | %d | - | - | - |\n", format, a.Failed)
			continue
		}

		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Fprintf(w, "| %s | %d | %d | %v | %v | %s |\n",
			format,
			a.Count,
			a.Failed,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			humanBytes(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Fprintf(w, "| **ALL** | %d | %d | %v | %v | %s |\n",
			totalCount,
			totalFailed,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			humanBytes(avgSize),
		)
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

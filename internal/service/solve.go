package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/kdduha/skillscribe/internal/errs"
	"github.com/kdduha/skillscribe/internal/metrics"
	"github.com/kdduha/skillscribe/internal/models"
	"github.com/kdduha/skillscribe/pkg/logger"
)

type generator interface {
	Provider() string
	Model() string
	Generate(ctx context.Context, req *models.GenerateRequest) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (*models.Solution, bool, error)
	Set(ctx context.Context, key string, solution *models.Solution) error
}

type SolveService struct {
	generator generator
	limiter   *rate.Limiter
	cache     Cache
	tracer    trace.Tracer
}

func NewSolveService(generator generator, limiter *rate.Limiter) *SolveService {
	return &SolveService{
		generator: generator,
		limiter:   limiter,
		tracer:    otel.Tracer("skillscribe/service"),
	}
}

func (s *SolveService) SetCacheClient(cache Cache) {
	s.cache = cache
}

// Solve asks the model for a structured solution to the problem shown in the
// image. Every failure is reported as an *errs.GenerationError; a partial
// solution is never returned.
func (s *SolveService) Solve(ctx context.Context, prompt string, image *models.Payload) (*models.Solution, error) {
	provider := s.generator.Provider()
	ctx, span := s.tracer.Start(ctx, "SolveService.Solve", trace.WithAttributes(
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", s.generator.Model()),
		attribute.String("image.mime_type", image.MIMEType),
	))
	defer span.End()

	log := logger.FromContext(ctx).With("provider", provider)
	key := getCacheKey(s.generator.Model(), prompt, image)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("cache get error", "error", err)
		}
		if found {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			log.Info("served from cache")
			return cached, nil
		}
	}

	start := time.Now()
	solution, err := s.generate(ctx, prompt, image)
	if err != nil {
		metrics.Solve("error", provider, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		log.Error("error calling model", "error", err)
		return nil, errs.NewGenerationError(err)
	}
	metrics.Solve("success", provider, time.Since(start))

	if len(solution.MicroLesson) != models.LessonSteps {
		log.Warn("unexpected micro-lesson length", "steps", len(solution.MicroLesson))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, solution); err != nil {
			log.Warn("failed to set cache", "error", err)
		}
	}
	return solution, nil
}

func (s *SolveService) generate(ctx context.Context, prompt string, image *models.Payload) (*models.Solution, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
	}

	text, err := s.generator.Generate(ctx, buildRequest(prompt, image))
	if err != nil {
		return nil, err
	}
	return parseSolution(text)
}

func buildRequest(prompt string, image *models.Payload) *models.GenerateRequest {
	return &models.GenerateRequest{
		System:     systemInstruction,
		UserText:   fmt.Sprintf(userPromptTemplate, prompt),
		Image:      *image,
		SchemaName: schemaName,
		Schema:     solutionSchema(),
	}
}

func getCacheKey(model, prompt string, image *models.Payload) string {
	data := []string{
		model,
		prompt,
		image.MIMEType,
		image.Base64,
	}

	hash := sha256.Sum256([]byte(strings.Join(data, "-")))
	return hex.EncodeToString(hash[:])
}

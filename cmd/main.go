package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/time/rate"

	_ "github.com/kdduha/skillscribe/docs"
	"github.com/kdduha/skillscribe/internal/cache"
	"github.com/kdduha/skillscribe/internal/config"
	"github.com/kdduha/skillscribe/internal/controller"
	"github.com/kdduha/skillscribe/internal/encoder"
	"github.com/kdduha/skillscribe/internal/handler"
	"github.com/kdduha/skillscribe/internal/metrics"
	"github.com/kdduha/skillscribe/internal/middleware"
	"github.com/kdduha/skillscribe/internal/response"
	"github.com/kdduha/skillscribe/internal/service"
	"github.com/kdduha/skillscribe/internal/session"
	"github.com/kdduha/skillscribe/internal/vertex"
	"github.com/kdduha/skillscribe/internal/view"
	"github.com/kdduha/skillscribe/pkg/logger"
)

// @title SkillScribe API
// @version 1.0
// @description Turns a photo of a technical problem and a short description into an explanation, a code solution and a micro-lesson.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	slog.SetDefault(log)
	ctx = logger.ToContext(ctx, log)

	if cfg.TracingEnable {
		tp, err := initTracer()
		if err != nil {
			log.Error("tracer init failed", "error", err)
			os.Exit(1)
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()
		log.Info("tracing enabled")
	}

	solveService, closeGenerator, err := newSolveService(ctx, cfg, log)
	if err != nil {
		log.Error("ai client init failed", "error", err)
		os.Exit(1)
	}
	defer closeGenerator()

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
			cfg.RedisConfig.TTL,
		)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis is not reachable, cache misses will fall through", "error", err)
		}
		solveService.SetCacheClient(redisCache)
		log.Info("set redis as cache", "addr", cfg.RedisConfig.Addr)
	}

	enc := encoder.New()
	renderer, err := view.New()
	if err != nil {
		log.Error("template init failed", "error", err)
		os.Exit(1)
	}

	sessions := session.NewStore(cfg.Session.Secret, cfg.Session.TTL, cfg.IsProduction(), func() *controller.Controller {
		return controller.New(enc, solveService)
	})
	go sessions.Run(ctx)

	resp := response.New()
	api := handler.NewSolveHandler(enc, solveService, resp)
	ui := handler.NewUIHandler(sessions, renderer, resp, cfg.Server.Timeout)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		chimiddleware.RequestID,
		middleware.NewLoggerMiddleware(log).RequestLogger,
		chimiddleware.Recoverer,
		chimiddleware.Throttle(cfg.Server.ThrottleLimit),
		chimiddleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	r.Get("/", ui.Index)
	r.Post("/solve", ui.Solve)
	r.Post("/example", ui.Example)
	r.Get("/healthz", ui.Healthz)
	r.Post("/api/solve", api.Solve)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.Server.Port, "provider", cfg.AI.Provider, "model", cfg.AI.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}
	log.Info("server stopped")
}

func newSolveService(ctx context.Context, cfg *config.Config, log *slog.Logger) (*service.SolveService, func(), error) {
	limiter := rate.NewLimiter(rate.Limit(cfg.AI.RateLimit), cfg.AI.RateBurst)

	switch cfg.AI.Provider {
	case config.ProviderVertex:
		adapter, err := vertex.NewAdapter(ctx, log, cfg.Vertex.ProjectID, cfg.Vertex.Region, cfg.AI.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("vertex: %w", err)
		}
		return service.NewSolveService(adapter, limiter), func() { _ = adapter.Close() }, nil

	default:
		client := openai.NewClient(
			option.WithAPIKey(cfg.OpenAI.APIKey),
			option.WithBaseURL(cfg.OpenAI.BaseURL),
			option.WithMaxRetries(0),
		)
		generator := service.NewOpenAIGenerator(client, cfg.AI.Model)
		return service.NewSolveService(generator, limiter), func() {}, nil
	}
}

func initTracer() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"productdesc/app/config"
	"productdesc/app/usecase"
	"productdesc/internal/infrastructure/llm"
	"productdesc/internal/infrastructure/logging"
	"productdesc/internal/infrastructure/metrics"
	"productdesc/internal/infrastructure/transport"
	"productdesc/internal/infrastructure/validator"
)

func main() {
	configPath := flag.String("config", "", "path to an HCL config file (overrides CONFIG_FILE)")
	flag.Parse()

	// load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	// logger
	logger := logging.New(cfg.AppEnv, cfg.LogLevel)
	zerolog.DefaultContextLogger = &logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// LLM client
	generator, err := llm.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal().Err(err).Msg("init llm client")
	}
	if !cfg.LLMConfigured() {
		logger.Warn().Str("provider", generator.Provider()).Msg("no model api key set (LLM_API_KEY or GEMINI_API_KEY); generation requests will fail")
	}

	// Usecases / services
	descriptionSvc := usecase.NewDescriptionService(
		generator,
		validator.NewProductValidator(),
		validator.NewDescriptionValidator(),
		usecase.ConstantRetry(cfg.Retry.MaxAttempts, cfg.Retry.Delay),
		logger,
	)
	evaluationSvc := usecase.NewEvaluationService()

	// Transport (HTTP handlers)
	handler := transport.NewDescriptionHandler(
		descriptionSvc,
		evaluationSvc,
		cfg.LLMConfigured(),
		logger,
	)

	// Router and server
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)(r)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			logger.Info().Str("addr", cfg.Metrics.Addr).Msg("starting metrics server")
			if err := metrics.StartMetricsServer(cfg.Metrics.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	// Start HTTP server
	go func() {
		logger.Info().
			Str("addr", cfg.Addr()).
			Str("provider", generator.Provider()).
			Str("model", generator.Model()).
			Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			cancel()
		}
	}()

	// OS signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info().Msg("shutdown signal received")
	case <-ctx.Done():
		logger.Info().Msg("context cancelled")
	}

	// Shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	logger.Info().Msg("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}

	logger.Info().Msg("service stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/clients"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/enrichment"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/handler"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/metadata"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/notify"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/repository"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/scheduler"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/service"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/middleware"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/database"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/pkg"
)

const (
	restBackend = "REST"
	sdkBackend  = "SDK"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

//nolint:funlen // Длина функции обусловлена необходимостью последовательной инициализации всех компонентов.
func run() error {
	cfg := config.LoadConfig()

	appLogger := pkg.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		appLogger.Error("Ошибка при применении миграций",
			"error", err,
		)

		return err
	}

	db, err := database.NewPostgresDB(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при подключении к базе данных",
			"error", err,
		)

		return fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	defer db.Close()

	linkRepo, err := repository.NewFactory(db, cfg, appLogger).CreateLinkRepository()
	if err != nil {
		appLogger.Error("Ошибка при создании репозитория ссылок",
			"error", err,
		)

		return err
	}

	strategies := metadata.DefaultTable(metadata.Sources{
		YouTube:               clients.NewYouTubeOEmbedClient(cfg, appLogger),
		TikTok:                clients.NewTikTokOEmbedClient(cfg, appLogger),
		Instagram:             clients.NewInstagramClient(cfg, appLogger),
		Pages:                 clients.NewPageClient(cfg, appLogger),
		InstagramCanonicalURL: cfg.InstagramCanonicalURL,
	})

	chain := metadata.NewChain(strategies, appLogger)

	completionModels, err := createCompletionModels(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при создании моделей обогащения",
			"error", err,
		)

		return err
	}

	publisher, err := notify.NewPublisherFactory(cfg, appLogger).CreatePublisher()
	if err != nil {
		appLogger.Error("Ошибка при создании публикатора событий",
			"error", err,
		)

		return err
	}

	pipeline := service.NewPipelineService(
		common.NewLinkAnalyzer(),
		chain,
		enrichment.NewEnricher(completionModels, appLogger),
		linkRepo,
		publisher,
		appLogger,
	)

	rateLimiter := middleware.NewRateLimiterMiddleware(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		appLogger,
	)

	router := handler.NewRouter(handler.RouterConfig{
		LinkHandler:    handler.NewLinkHandler(pipeline, cfg.LinksListLimit, appLogger),
		WebhookHandler: handler.NewWebhookHandler(pipeline, appLogger),
		RateLimiter:    rateLimiter,
		Logger:         appLogger,
	})

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsServer := metrics.NewMetricsServer(cfg.MetricsPort, appLogger, map[string]metrics.HealthCheck{
		"postgres": db.Ping,
	})

	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Ошибка сервера метрик", "error", err)
		}
	}()

	statsScheduler := scheduler.NewStatsScheduler(linkRepo, cfg.StatsInterval, appLogger)
	statsScheduler.Start()

	serverErr := make(chan error, 1)

	go func() {
		appLogger.Info("Запуск HTTP сервера",
			"port", cfg.ServerPort,
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("Получен сигнал завершения")
	case err := <-serverErr:
		appLogger.Error("Ошибка при запуске HTTP сервера",
			"error", err,
		)
	}

	// Пул закрывается отложенно, только после того, как дождались запросов в работе.
	grace := cfg.ShutdownGrace(strategies.LongestChain() + len(completionModels))

	return shutdown(httpServer, grace, statsScheduler, rateLimiter, publisher, appLogger)
}

func createCompletionModels(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]enrichment.CompletionModel, error) {
	backend := strings.ToUpper(strings.TrimSpace(cfg.AIBackend))

	logger.Info("Создание моделей обогащения",
		"backend", backend,
		"models", cfg.GeminiModels,
	)

	switch backend {
	case restBackend:
		return enrichment.NewRESTModels(cfg.GeminiModels, clients.NewGeminiRESTClient(cfg, logger)), nil
	case sdkBackend:
		sdkClient, err := clients.NewGeminiSDKClient(ctx, cfg)
		if err != nil {
			logger.Warn("Клиент Gemini SDK недоступен, ссылки сохраняются без обогащения",
				"error", err,
			)

			return nil, nil
		}

		return enrichment.NewSDKModels(cfg.GeminiModels, sdkClient), nil
	default:
		return nil, &domainerrors.ErrUnknownAIBackend{Backend: backend}
	}
}

func shutdown(
	httpServer *http.Server,
	grace time.Duration,
	statsScheduler *scheduler.StatsScheduler,
	rateLimiter *middleware.RateLimiterMiddleware,
	publisher notify.LinkEventPublisher,
	logger *slog.Logger,
) error {
	statsScheduler.Stop()

	logger.Info("Ожидание завершения запросов",
		"grace", grace,
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	err := multierr.Combine(
		httpServer.Shutdown(shutdownCtx),
		rateLimiter.Close(),
		publisher.Close(),
	)
	if err != nil {
		logger.Error("Ошибка при остановке сервиса",
			"error", err,
		)

		return err
	}

	logger.Info("Сервис успешно остановлен")

	return nil
}

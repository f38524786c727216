package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-BotGateway/internal/api/handlers/bot_webhook"
	"github.com/m04kA/SMC-BotGateway/internal/api/handlers/health"
	"github.com/m04kA/SMC-BotGateway/internal/api/middleware"
	"github.com/m04kA/SMC-BotGateway/internal/config"
	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
	"github.com/m04kA/SMC-BotGateway/internal/service/updates"
	"github.com/m04kA/SMC-BotGateway/internal/usecase/start_message"
	"github.com/m04kA/SMC-BotGateway/internal/worker"
	"github.com/m04kA/SMC-BotGateway/pkg/logger"
	"github.com/m04kA/SMC-BotGateway/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BotGateway...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Создаём контекст с возможностью отмены для управления жизненным циклом горутин
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	// Инициализируем клиент Telegram Bot API
	// Токен валидируется по формату до первого запроса
	botClient, err := botapi.NewClient(
		cfg.Telegram.BotToken,
		cfg.Telegram.BaseURL,
		time.Duration(cfg.Telegram.Timeout)*time.Second,
	)
	if err != nil {
		log.Fatal("Failed to initialize Bot API client: %v", err)
	}
	log.Info("Bot API client initialized")

	// Инициализируем адаптер обновлений и диспетчер
	updatesSvc := updates.NewService()
	var dispatchMetrics dispatch.Metrics
	if metricsCollector != nil {
		dispatchMetrics = metricsCollector
	}
	dispatcher := dispatch.NewService(updatesSvc, botClient, log, dispatchMetrics)
	log.Info("Update dispatcher initialized")

	// Инициализируем обработчик команды /start
	startMessageUC := start_message.New(log)
	log.Info("Start message use case initialized")

	// Определяем режим работы: Webhook или Long Polling
	if cfg.Telegram.WebhookURL != "" {
		// Режим Webhook
		log.Info("Using Webhook mode")

		if err := botClient.SetWebhook(ctx, cfg.Telegram.WebhookURL, 0, nil); err != nil {
			log.Fatal("Failed to set Telegram webhook: %v", err)
		}
		log.Info("Telegram webhook set to %s", cfg.Telegram.WebhookURL)
	} else {
		// Режим Long Polling
		log.Info("Using Long Polling mode")

		if err := botClient.DeleteWebhook(ctx, false); err != nil {
			log.Warn("Failed to delete webhook (may not exist): %v", err)
		}

		// Создаём polling handler и запускаем в фоне
		pollingHandler := worker.NewPollingHandler(
			botClient,
			dispatcher,
			startMessageUC.Handle,
			log,
			cfg.Telegram.PollLimit,
			cfg.Telegram.PollTimeout,
		)
		go pollingHandler.Start(ctx)
		log.Info("Telegram long polling started")
	}

	// Запускаем периодическую проверку доступности Bot API
	var healthMetrics worker.HealthMetrics
	if metricsCollector != nil {
		healthMetrics = metricsCollector
	}
	healthChecker := worker.NewHealthChecker(
		botClient,
		log,
		healthMetrics,
		time.Duration(cfg.Worker.HealthcheckInterval)*time.Second,
	)
	if err := healthChecker.Start(); err != nil {
		log.Fatal("Failed to start bot health checker: %v", err)
	}
	log.Info("Bot health checker started")

	// Инициализируем handlers
	healthHandler := health.NewHandler()
	botWebhookHandler := bot_webhook.NewHandler(dispatcher, startMessageUC.Handle, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем request-id middleware
	r.Use(middleware.RequestIDMiddleware())

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Публичные endpoints
	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)
	r.HandleFunc("/webhook/telegram", botWebhookHandler.Handle).Methods(http.MethodPost)

	// Metrics endpoint (публичный)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем HTTP сервер
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем воркеры ПЕРЕД сервером
	cancelCtx()
	healthChecker.Stop()
	log.Info("Worker components stopped")

	// Graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

const healthCheckTimeout = 10 * time.Second

// HealthChecker периодически проверяет доступность Telegram Bot API
// Результат попадает в лог и в gauge метрику
type HealthChecker struct {
	client    BotClient
	logger    Logger
	metrics   HealthMetrics
	scheduler *gocron.Scheduler
	interval  time.Duration
}

// NewHealthChecker создает новый экземпляр проверки доступности
// metrics может быть nil, если метрики выключены
func NewHealthChecker(client BotClient, logger Logger, metrics HealthMetrics, interval time.Duration) *HealthChecker {
	return &HealthChecker{
		client:    client,
		logger:    logger,
		metrics:   metrics,
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
	}
}

// Start запускает периодическую проверку
func (h *HealthChecker) Start() error {
	h.logger.Info("Starting bot health checker (interval: %s)", h.interval)

	if _, err := h.scheduler.Every(h.interval).Do(h.check); err != nil {
		return err
	}

	h.scheduler.StartAsync()
	return nil
}

// Stop останавливает проверку
func (h *HealthChecker) Stop() {
	h.logger.Info("Stopping bot health checker")
	h.scheduler.Stop()
	h.logger.Info("Bot health checker stopped")
}

// check выполняет один запрос getMe
func (h *HealthChecker) check() {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	bot, err := h.client.GetMe(ctx)
	if err != nil {
		h.logger.Warn("Bot health check failed: %v", err)
		if h.metrics != nil {
			h.metrics.SetBotUp(false)
		}
		return
	}

	h.logger.Debug("Bot health check ok (@%s)", bot.UserName)
	if h.metrics != nil {
		h.metrics.SetBotUp(true)
	}
}

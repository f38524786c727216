package worker

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
)

const pollRetryDelay = 5 * time.Second

// PollingHandler обрабатывает входящие обновления в режиме long polling
// Прогоняет каждое обновление через тот же диспетчер, что и webhook:
// обработчик не знает, каким способом доставлено обновление
type PollingHandler struct {
	client     BotClient
	dispatcher Dispatcher
	botHandler dispatch.Handler
	logger     Logger

	limit   int
	timeout int
	offset  int64 // курсор getUpdates, живёт только в памяти процесса
}

// NewPollingHandler создаёт новый обработчик для long polling
func NewPollingHandler(client BotClient, dispatcher Dispatcher, botHandler dispatch.Handler, logger Logger, limit, timeout int) *PollingHandler {
	return &PollingHandler{
		client:     client,
		dispatcher: dispatcher,
		botHandler: botHandler,
		logger:     logger,
		limit:      limit,
		timeout:    timeout,
	}
}

// Start запускает цикл опроса getUpdates
// Блокирующий метод, должен вызываться в отдельной goroutine
func (h *PollingHandler) Start(ctx context.Context) {
	h.logger.Info("Starting Telegram long polling handler...")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Stopping Telegram long polling handler...")
			return
		default:
		}

		updates, err := h.client.GetUpdates(ctx, h.offset, h.limit, h.timeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				h.logger.Info("Stopping Telegram long polling handler...")
				return
			}

			h.logger.Error("Failed to get updates: %v", err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for i := range updates {
			update := &updates[i]
			if update.UpdateID >= h.offset {
				h.offset = update.UpdateID + 1
			}

			resp := h.dispatcher.Run(ctx, h.botHandler, update)
			if resp.DirectReply {
				h.logger.Info("Direct reply sent for update %d", update.UpdateID)
			}
		}
	}
}

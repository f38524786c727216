package start_message

import (
	"context"

	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
	"github.com/m04kA/SMC-BotGateway/internal/usecase/start_message/templates"
)

const commandStart = "/start"

// UseCase обрабатывает команду /start
// Это встроенный обработчик шлюза: отвечает приветствием на /start
// и игнорирует все остальные обновления
type UseCase struct {
	logger Logger
}

// New создаёт новый use case для обработки /start
func New(logger Logger) *UseCase {
	return &UseCase{
		logger: logger,
	}
}

// Handle реализует dispatch.Handler
func (uc *UseCase) Handle(ctx context.Context, update *botapi.Update) dispatch.Result {
	// Обрабатываем только текстовые сообщения
	if update.Message == nil || update.Message.Text == "" {
		return dispatch.NoReply()
	}

	// Обрабатываем только команду /start
	if update.Message.Text != commandStart {
		return dispatch.NoReply()
	}

	if update.Message.From != nil {
		uc.logger.Info("Received /start command from user %d", update.Message.From.ID)
	}

	return dispatch.TextReply(templates.WelcomeMessageText)
}

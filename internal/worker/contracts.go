package worker

import (
	"context"

	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
)

// BotClient интерфейс клиента Bot API, используемый воркерами
type BotClient interface {
	// GetUpdates получает обновления в режиме long polling
	GetUpdates(ctx context.Context, offset int64, limit, timeout int) ([]botapi.Update, error)

	// GetMe возвращает информацию о боте
	GetMe(ctx context.Context) (*botapi.User, error)
}

// Dispatcher интерфейс диспетчера для обработки обновлений
type Dispatcher interface {
	Run(ctx context.Context, handler dispatch.Handler, update *botapi.Update) *dispatch.Response
}

// HealthMetrics интерфейс для публикации результата проверки Bot API
// Может быть nil, если метрики выключены
type HealthMetrics interface {
	SetBotUp(up bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

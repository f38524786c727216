package bot_webhook

import (
	"context"

	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
)

// Dispatcher интерфейс диспетчера обновлений
type Dispatcher interface {
	Dispatch(ctx context.Context, handler dispatch.Handler, body []byte) (*dispatch.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

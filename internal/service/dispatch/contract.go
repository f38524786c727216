package dispatch

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
)

// Handler обработчик одного обновления
// Выбор обработчика - ответственность вызывающей стороны, диспетчер
// получает уже разрешённый обработчик
type Handler func(ctx context.Context, update *botapi.Update) Result

// UpdateAdapter интерфейс адаптера webhook-обновлений
type UpdateAdapter interface {
	Adapt(body []byte) (*botapi.Update, error)
}

// MessageSender интерфейс для отправки автоответа через Bot API
type MessageSender interface {
	SendMessageRaw(ctx context.Context, params botapi.SendMessageParams) (json.RawMessage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учёта автоответов
// Может быть nil, если метрики выключены
type Metrics interface {
	IncDirectReply()
	IncDirectReplyError()
}

package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
)

// Response результат обработки одного обновления
// После запуска обработчика статус всегда успешный, даже если автоответ
// не отправлялся или не дошёл: платформа не должна ретраить принятую доставку
type Response struct {
	Status      int
	Body        []byte
	DirectReply bool // true только при успешно отправленном автоответе
}

// Service диспетчер обновлений
// Не хранит состояния между вызовами, безопасен при конкурентных обращениях
type Service struct {
	adapter UpdateAdapter
	sender  MessageSender
	logger  Logger
	metrics Metrics
}

// NewService создает новый экземпляр диспетчера
// metrics может быть nil, если метрики выключены
func NewService(adapter UpdateAdapter, sender MessageSender, logger Logger, metrics Metrics) *Service {
	return &Service{
		adapter: adapter,
		sender:  sender,
		logger:  logger,
		metrics: metrics,
	}
}

// Dispatch обрабатывает сырое тело webhook-запроса
// Ошибка декодирования пробрасывается наверх, а не прячется за успешным
// ответом: иначе некорректный входящий трафик останется незамеченным
func (s *Service) Dispatch(ctx context.Context, handler Handler, body []byte) (*Response, error) {
	update, err := s.adapter.Adapt(body)
	if err != nil {
		return nil, fmt.Errorf("dispatch: adapt update: %w", err)
	}

	return s.Run(ctx, handler, update), nil
}

// Run запускает обработчик против уже адаптированного обновления
// Используется напрямую long polling воркером, чтобы оба режима доставки
// проходили через одну и ту же классификацию результата
func (s *Service) Run(ctx context.Context, handler Handler, update *botapi.Update) *Response {
	result := handler(ctx, update)

	switch result.kind {
	case kindNoReply:
		return &Response{Status: http.StatusOK}

	case kindOpaqueResult:
		// Обработчик сам отвечает за свой эффект, автоответ не нужен
		return &Response{Status: http.StatusOK}

	case kindTextReply:
		return s.sendDirectReply(ctx, update, result.text)
	}

	return &Response{Status: http.StatusOK}
}

// sendDirectReply отправляет автоответ в чат обновления
// Ошибка отправки логируется и учитывается в метриках, но webhook-ответ
// остаётся успешным: входящее обновление уже принято
func (s *Service) sendDirectReply(ctx context.Context, update *botapi.Update, text string) *Response {
	chatID, ok := update.ChatID()
	if !ok {
		s.logger.Warn("Direct reply skipped: update %d has no chat", update.UpdateID)
		return &Response{Status: http.StatusOK}
	}

	raw, err := s.sender.SendMessageRaw(ctx, botapi.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		s.logger.Error("Failed to send direct reply to chat %s: %v", chatID, err)
		if s.metrics != nil {
			s.metrics.IncDirectReplyError()
		}
		return &Response{Status: http.StatusOK}
	}

	if s.metrics != nil {
		s.metrics.IncDirectReply()
	}

	return &Response{
		Status:      http.StatusOK,
		Body:        raw,
		DirectReply: true,
	}
}

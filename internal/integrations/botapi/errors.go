package botapi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken возвращается при токене, не соответствующем формату Bot API
	ErrInvalidToken = errors.New("botapi: invalid bot token format")

	// ErrInvalidChatID возвращается при пустом chat_id
	ErrInvalidChatID = errors.New("botapi: invalid chat_id")

	// ErrEmptyMessage возвращается при пустом тексте сообщения
	ErrEmptyMessage = errors.New("botapi: message text is empty")

	// ErrUnsupportedFileType возвращается, когда расширение файла
	// не поддерживается целевым методом отправки
	ErrUnsupportedFileType = errors.New("botapi: unsupported file type")

	// ErrSendMessage возвращается при ошибке отправки сообщения
	ErrSendMessage = errors.New("botapi: failed to send message")

	// ErrSendFile возвращается при ошибке отправки медиа
	ErrSendFile = errors.New("botapi: failed to send file")

	// ErrEditMessage возвращается при ошибке редактирования сообщения
	ErrEditMessage = errors.New("botapi: failed to edit message")

	// ErrDeleteMessage возвращается при ошибке удаления сообщения
	ErrDeleteMessage = errors.New("botapi: failed to delete message")

	// ErrAnswerCallbackQuery возвращается при ошибке ответа на callback query
	ErrAnswerCallbackQuery = errors.New("botapi: failed to answer callback query")

	// ErrAnswerInlineQuery возвращается при ошибке ответа на inline query
	ErrAnswerInlineQuery = errors.New("botapi: failed to answer inline query")

	// ErrGetUpdates возвращается при ошибке получения обновлений
	ErrGetUpdates = errors.New("botapi: failed to get updates")

	// ErrGetMe возвращается при ошибке запроса информации о боте
	ErrGetMe = errors.New("botapi: failed to get bot info")

	// ErrSetWebhook возвращается при ошибке установки webhook
	ErrSetWebhook = errors.New("botapi: failed to set webhook")

	// ErrDeleteWebhook возвращается при ошибке удаления webhook
	ErrDeleteWebhook = errors.New("botapi: failed to delete webhook")

	// ErrGetWebhookInfo возвращается при ошибке запроса состояния webhook
	ErrGetWebhookInfo = errors.New("botapi: failed to get webhook info")
)

// APIError ошибка уровня Telegram Bot API (ответ с ok=false)
type APIError struct {
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

package botapi

import (
	"encoding/json"
	"strconv"
)

// ParseMode константы для режимов парсинга текста в Telegram
const (
	ParseModeHTML     = "HTML"     // HTML форматирование
	ParseModeMarkdown = "Markdown" // Markdown форматирование (legacy)
	ParseModePlain    = ""         // Без форматирования
)

// ChatID идентификатор чата в Telegram
// Bot API допускает как числовые ID, так и строковые (@channelname),
// поэтому значение хранится строкой и сериализуется в исходном виде
type ChatID string

// UnmarshalJSON принимает как JSON-число, так и JSON-строку
func (c *ChatID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ChatID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = ChatID(n.String())
	return nil
}

// MarshalJSON сериализует числовые ID как число, остальные как строку
func (c ChatID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(c), 10, 64); err == nil {
		return []byte(c), nil
	}
	return json.Marshal(string(c))
}

func (c ChatID) String() string {
	return string(c)
}

// Update обновление от Telegram
// Структура одинакова для webhook и long polling режимов
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	EditedMessage *Message       `json:"edited_message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
	InlineQuery   *InlineQuery   `json:"inline_query,omitempty"`
}

// ChatID возвращает идентификатор чата, к которому относится обновление
// Второе значение false, если чат определить невозможно (например, inline query)
func (u *Update) ChatID() (ChatID, bool) {
	switch {
	case u.Message != nil && u.Message.Chat != nil:
		return u.Message.Chat.ID, true
	case u.EditedMessage != nil && u.EditedMessage.Chat != nil:
		return u.EditedMessage.Chat.ID, true
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil && u.CallbackQuery.Message.Chat != nil:
		return u.CallbackQuery.Message.Chat.ID, true
	}
	return "", false
}

// Message сообщение в Telegram
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      *Chat  `json:"chat,omitempty"`
	Date      int64  `json:"date,omitempty"`
	Text      string `json:"text,omitempty"`
}

// User пользователь Telegram
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	UserName  string `json:"username,omitempty"`
}

// Chat чат в Telegram
type Chat struct {
	ID        ChatID `json:"id"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	UserName  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// CallbackQuery callback от inline-кнопки
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// InlineQuery входящий inline-запрос
type InlineQuery struct {
	ID     string `json:"id"`
	From   *User  `json:"from"`
	Query  string `json:"query"`
	Offset string `json:"offset,omitempty"`
}

// InlineKeyboardMarkup inline-клавиатура
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton кнопка inline-клавиатуры
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// InlineQueryResultArticle текстовый результат для answerInlineQuery
type InlineQueryResultArticle struct {
	Type                string                   `json:"type"`
	ID                  string                   `json:"id"`
	Title               string                   `json:"title"`
	Description         string                   `json:"description,omitempty"`
	InputMessageContent *InputTextMessageContent `json:"input_message_content"`
}

// InputTextMessageContent текстовое содержимое inline-результата
type InputTextMessageContent struct {
	MessageText           string `json:"message_text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// WebhookInfo текущее состояние webhook
type WebhookInfo struct {
	URL                  string `json:"url"`
	HasCustomCertificate bool   `json:"has_custom_certificate"`
	PendingUpdateCount   int    `json:"pending_update_count"`
	LastErrorDate        int64  `json:"last_error_date,omitempty"`
	LastErrorMessage     string `json:"last_error_message,omitempty"`
}

// APIResponse стандартная обёртка ответа Telegram Bot API
type APIResponse struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// ResponseParameters дополнительные параметры ошибки Telegram API
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

// SendMessageParams параметры для sendMessage
type SendMessageParams struct {
	ChatID                ChatID
	Text                  string
	ParseMode             string // HTML, Markdown или пусто
	DisableWebPagePreview bool
	ReplyMarkup           *InlineKeyboardMarkup
}

// EditMessageTextParams параметры для editMessageText
type EditMessageTextParams struct {
	ChatID      ChatID
	MessageID   int64
	Text        string
	ParseMode   string
	ReplyMarkup *InlineKeyboardMarkup
}

// SendFileParams параметры для отправки медиа (sendPhoto, sendDocument и т.д.)
// File может быть URL, file_id или путём к локальному файлу
type SendFileParams struct {
	ChatID    ChatID
	File      string
	Caption   string
	ParseMode string
}

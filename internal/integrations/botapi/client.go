package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

// DefaultBaseURL базовый URL Telegram Bot API
const DefaultBaseURL = "https://api.telegram.org"

// tokenPattern формат токена: числовой ID бота и секрет фиксированной длины
var tokenPattern = regexp.MustCompile(`^\d{9}:.{35}$`)

// Client клиент для работы с Telegram Bot API
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента Bot API
// Токен валидируется по формату до первого запроса
func NewClient(token, baseURL string, timeout time.Duration) (*Client, error) {
	if !tokenPattern.MatchString(token) {
		return nil, ErrInvalidToken
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// GetMe возвращает информацию о боте
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.callAPI(ctx, "getMe", nil, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGetMe, err)
	}
	return &user, nil
}

// GetUpdates получает обновления в режиме long polling
func (c *Client) GetUpdates(ctx context.Context, offset int64, limit, timeout int) ([]Update, error) {
	body := map[string]interface{}{
		"timeout": timeout,
	}
	if offset > 0 {
		body["offset"] = offset
	}
	if limit > 0 {
		body["limit"] = limit
	}

	var updates []Update
	if err := c.callAPI(ctx, "getUpdates", body, &updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGetUpdates, err)
	}
	return updates, nil
}

// SetWebhook устанавливает webhook URL для получения обновлений от Telegram
func (c *Client) SetWebhook(ctx context.Context, url string, maxConnections int, allowedUpdates []string) error {
	body := map[string]interface{}{
		"url": url,
	}
	if maxConnections > 0 {
		body["max_connections"] = maxConnections
	}
	if len(allowedUpdates) > 0 {
		body["allowed_updates"] = allowedUpdates
	}

	var result bool
	if err := c.callAPI(ctx, "setWebhook", body, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrSetWebhook, err)
	}
	return nil
}

// DeleteWebhook удаляет webhook (переключает на long polling)
func (c *Client) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	body := map[string]interface{}{
		"drop_pending_updates": dropPendingUpdates,
	}

	var result bool
	if err := c.callAPI(ctx, "deleteWebhook", body, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteWebhook, err)
	}
	return nil
}

// GetWebhookInfo возвращает текущее состояние webhook
func (c *Client) GetWebhookInfo(ctx context.Context) (*WebhookInfo, error) {
	var info WebhookInfo
	if err := c.callAPI(ctx, "getWebhookInfo", nil, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGetWebhookInfo, err)
	}
	return &info, nil
}

// SendMessageRaw отправляет текстовое сообщение и возвращает необработанное
// тело result из ответа Bot API
// Используется диспетчером, которому нужен исходный JSON для webhook-ответа
func (c *Client) SendMessageRaw(ctx context.Context, params SendMessageParams) (json.RawMessage, error) {
	if params.ChatID == "" {
		return nil, ErrInvalidChatID
	}
	if params.Text == "" {
		return nil, ErrEmptyMessage
	}

	body := map[string]interface{}{
		"chat_id": params.ChatID,
		"text":    params.Text,
	}
	if params.ParseMode != "" {
		body["parse_mode"] = params.ParseMode
	}
	if params.DisableWebPagePreview {
		body["disable_web_page_preview"] = true
	}
	if params.ReplyMarkup != nil {
		body["reply_markup"] = params.ReplyMarkup
	}

	var raw json.RawMessage
	if err := c.callAPI(ctx, "sendMessage", body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendMessage, err)
	}
	return raw, nil
}

// SendMessage отправляет текстовое сообщение
func (c *Client) SendMessage(ctx context.Context, params SendMessageParams) (*Message, error) {
	raw, err := c.SendMessageRaw(ctx, params)
	if err != nil {
		return nil, err
	}

	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, fmt.Errorf("%w: decode result: %v", ErrSendMessage, err)
	}
	return &message, nil
}

// EditMessageText редактирует текст ранее отправленного сообщения
func (c *Client) EditMessageText(ctx context.Context, params EditMessageTextParams) (*Message, error) {
	if params.ChatID == "" {
		return nil, ErrInvalidChatID
	}
	if params.Text == "" {
		return nil, ErrEmptyMessage
	}

	body := map[string]interface{}{
		"chat_id":    params.ChatID,
		"message_id": params.MessageID,
		"text":       params.Text,
	}
	if params.ParseMode != "" {
		body["parse_mode"] = params.ParseMode
	}
	if params.ReplyMarkup != nil {
		body["reply_markup"] = params.ReplyMarkup
	}

	var message Message
	if err := c.callAPI(ctx, "editMessageText", body, &message); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEditMessage, err)
	}
	return &message, nil
}

// DeleteMessage удаляет сообщение
func (c *Client) DeleteMessage(ctx context.Context, chatID ChatID, messageID int64) error {
	if chatID == "" {
		return ErrInvalidChatID
	}

	body := map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
	}

	var result bool
	if err := c.callAPI(ctx, "deleteMessage", body, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteMessage, err)
	}
	return nil
}

// AnswerCallbackQuery отвечает на callback query от inline-кнопки
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string, showAlert bool) error {
	body := map[string]interface{}{
		"callback_query_id": callbackQueryID,
	}
	if text != "" {
		body["text"] = text
		body["show_alert"] = showAlert
	}

	var result bool
	if err := c.callAPI(ctx, "answerCallbackQuery", body, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrAnswerCallbackQuery, err)
	}
	return nil
}

// AnswerInlineQuery отвечает на inline query списком текстовых результатов
func (c *Client) AnswerInlineQuery(ctx context.Context, inlineQueryID string, results []InlineQueryResultArticle, cacheTime int) error {
	body := map[string]interface{}{
		"inline_query_id": inlineQueryID,
		"results":         results,
	}
	if cacheTime > 0 {
		body["cache_time"] = cacheTime
	}

	var result bool
	if err := c.callAPI(ctx, "answerInlineQuery", body, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrAnswerInlineQuery, err)
	}
	return nil
}

// callAPI выполняет один запрос к Bot API и декодирует поле result ответа
// Повторных попыток нет: политика ретраев принадлежит вызывающей стороне
func (c *Client) callAPI(ctx context.Context, method string, body map[string]interface{}, result interface{}) error {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	return decodeAPIResponse(resp.Body, result)
}

// decodeAPIResponse разбирает стандартную обёртку ответа Bot API
func decodeAPIResponse(r io.Reader, result interface{}) error {
	respBody, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.OK {
		apiErr := &APIError{
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
		}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = apiResp.Parameters.RetryAfter
		}
		return apiErr
	}

	if result != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return nil
}

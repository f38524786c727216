package botapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// allowedExtensions допустимые расширения файлов по методам отправки
var allowedExtensions = map[string][]string{
	"sendPhoto":    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".webp"},
	"sendAudio":    {".mp3", ".m4a", ".ogg"},
	"sendVideo":    {".mp4", ".avi", ".mov", ".webm"},
	"sendSticker":  {".webp", ".png"},
	"sendDocument": nil, // любые файлы
}

// uploadFieldNames имена multipart-полей по методам отправки
var uploadFieldNames = map[string]string{
	"sendPhoto":    "photo",
	"sendAudio":    "audio",
	"sendVideo":    "video",
	"sendSticker":  "sticker",
	"sendDocument": "document",
}

// SendPhoto отправляет фото (URL, file_id или локальный файл)
func (c *Client) SendPhoto(ctx context.Context, params SendFileParams) (*Message, error) {
	return c.sendFile(ctx, "sendPhoto", params)
}

// SendDocument отправляет документ
func (c *Client) SendDocument(ctx context.Context, params SendFileParams) (*Message, error) {
	return c.sendFile(ctx, "sendDocument", params)
}

// SendVideo отправляет видео
func (c *Client) SendVideo(ctx context.Context, params SendFileParams) (*Message, error) {
	return c.sendFile(ctx, "sendVideo", params)
}

// SendAudio отправляет аудио
func (c *Client) SendAudio(ctx context.Context, params SendFileParams) (*Message, error) {
	return c.sendFile(ctx, "sendAudio", params)
}

// SendSticker отправляет стикер
func (c *Client) SendSticker(ctx context.Context, params SendFileParams) (*Message, error) {
	return c.sendFile(ctx, "sendSticker", params)
}

// sendFile отправляет медиа выбранным методом
// URL и file_id передаются строкой в JSON-теле, локальные файлы загружаются
// через multipart/form-data с проверкой расширения
func (c *Client) sendFile(ctx context.Context, method string, params SendFileParams) (*Message, error) {
	if params.ChatID == "" {
		return nil, ErrInvalidChatID
	}
	if params.File == "" {
		return nil, fmt.Errorf("%w: file is required", ErrSendFile)
	}

	fieldName := uploadFieldNames[method]

	// URL или file_id - обычный JSON-запрос без загрузки
	if !isLocalFile(params.File) {
		body := map[string]interface{}{
			"chat_id": params.ChatID,
			fieldName: params.File,
		}
		if params.Caption != "" {
			body["caption"] = params.Caption
			if params.ParseMode != "" {
				body["parse_mode"] = params.ParseMode
			}
		}

		var message Message
		if err := c.callAPI(ctx, method, body, &message); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSendFile, err)
		}
		return &message, nil
	}

	if err := validateFileExtension(method, params.File); err != nil {
		return nil, err
	}

	var message Message
	if err := c.uploadFile(ctx, method, fieldName, params, &message); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFile, err)
	}
	return &message, nil
}

// validateFileExtension проверяет расширение файла против списка метода
func validateFileExtension(method, file string) error {
	allowed, ok := allowedExtensions[method]
	if !ok || allowed == nil {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(file))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}

	return fmt.Errorf("%w: %q is not accepted by %s", ErrUnsupportedFileType, ext, method)
}

// isLocalFile отличает путь к локальному файлу от URL и file_id
func isLocalFile(file string) bool {
	if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
		return false
	}

	_, err := os.Stat(file)
	return err == nil
}

// uploadFile загружает локальный файл через multipart/form-data
func (c *Client) uploadFile(ctx context.Context, method, fieldName string, params SendFileParams, result interface{}) error {
	f, err := os.Open(params.File)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", params.ChatID.String()); err != nil {
		return fmt.Errorf("write chat_id field: %w", err)
	}
	if params.Caption != "" {
		if err := w.WriteField("caption", params.Caption); err != nil {
			return fmt.Errorf("write caption field: %w", err)
		}
		if params.ParseMode != "" {
			if err := w.WriteField("parse_mode", params.ParseMode); err != nil {
				return fmt.Errorf("write parse_mode field: %w", err)
			}
		}
	}

	part, err := w.CreateFormFile(fieldName, filepath.Base(params.File))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("write file data: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	return decodeAPIResponse(resp.Body, result)
}

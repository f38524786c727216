package botapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456789:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA" // 9 цифр + 35 символов секрета

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(testToken, srv.URL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func respondOK(t *testing.T, w http.ResponseWriter, result interface{}) {
	t.Helper()

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"ok":true,"result":%s}`, raw)
}

func TestNewClient_TokenValidation(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", testToken, false},
		{"empty", "", true},
		{"short bot id", "12345:" + strings.Repeat("x", 35), true},
		{"short secret", "123456789:short", true},
		{"no colon", "123456789" + strings.Repeat("x", 36), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(tc.token, "", time.Second)
			if tc.wantErr {
				assert.Nil(t, client)
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestClient_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, Message{MessageID: 10, Text: "hello"})
	})

	msg, err := client.SendMessage(context.Background(), SendMessageParams{
		ChatID:                ChatID("100500"),
		Text:                  "hello",
		ParseMode:             ParseModeMarkdown,
		DisableWebPagePreview: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/bot"+testToken+"/sendMessage", gotPath)
	assert.Equal(t, float64(100500), gotBody["chat_id"]) // числовой ID уходит числом
	assert.Equal(t, "hello", gotBody["text"])
	assert.Equal(t, "Markdown", gotBody["parse_mode"])
	assert.Equal(t, true, gotBody["disable_web_page_preview"])

	assert.Equal(t, int64(10), msg.MessageID)
}

func TestClient_SendMessage_StringChatID(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, Message{MessageID: 1})
	})

	_, err := client.SendMessage(context.Background(), SendMessageParams{
		ChatID: ChatID("fake-chat-id"),
		Text:   "change",
	})
	require.NoError(t, err)

	assert.Equal(t, "fake-chat-id", gotBody["chat_id"]) // нечисловой ID уходит строкой
	assert.Equal(t, "change", gotBody["text"])
}

func TestClient_SendMessage_Validation(t *testing.T) {
	client, err := NewClient(testToken, "", time.Second)
	require.NoError(t, err)

	_, err = client.SendMessage(context.Background(), SendMessageParams{Text: "hi"})
	assert.ErrorIs(t, err, ErrInvalidChatID)

	_, err = client.SendMessage(context.Background(), SendMessageParams{ChatID: "1"})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestClient_SendMessage_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	})

	_, err := client.SendMessage(context.Background(), SendMessageParams{
		ChatID: "1",
		Text:   "hi",
	})

	assert.ErrorIs(t, err, ErrSendMessage)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_GetUpdates(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/getUpdates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, []Update{
			{UpdateID: 5, Message: &Message{MessageID: 1, Text: "/start", Chat: &Chat{ID: "42"}}},
		})
	})

	updates, err := client.GetUpdates(context.Background(), 5, 100, 60)
	require.NoError(t, err)

	assert.Equal(t, float64(5), gotBody["offset"])
	assert.Equal(t, float64(100), gotBody["limit"])
	assert.Equal(t, float64(60), gotBody["timeout"])

	require.Len(t, updates, 1)
	assert.Equal(t, int64(5), updates[0].UpdateID)
	assert.Equal(t, "/start", updates[0].Message.Text)
}

func TestClient_SetWebhook(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/setWebhook", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, true)
	})

	err := client.SetWebhook(context.Background(), "https://example.com/webhook/telegram", 40, []string{"message"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/webhook/telegram", gotBody["url"])
	assert.Equal(t, float64(40), gotBody["max_connections"])
	assert.Equal(t, []interface{}{"message"}, gotBody["allowed_updates"])
}

func TestClient_DeleteMessage(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/deleteMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, true)
	})

	err := client.DeleteMessage(context.Background(), "77", 12)
	require.NoError(t, err)

	assert.Equal(t, float64(77), gotBody["chat_id"])
	assert.Equal(t, float64(12), gotBody["message_id"])
}

func TestClient_AnswerCallbackQuery(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/answerCallbackQuery", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, true)
	})

	err := client.AnswerCallbackQuery(context.Background(), "cb-1", "готово", true)
	require.NoError(t, err)

	assert.Equal(t, "cb-1", gotBody["callback_query_id"])
	assert.Equal(t, "готово", gotBody["text"])
	assert.Equal(t, true, gotBody["show_alert"])
}

func TestClient_AnswerInlineQuery(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/answerInlineQuery", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, true)
	})

	results := []InlineQueryResultArticle{{
		Type:  "article",
		ID:    "1",
		Title: "Ответ",
		InputMessageContent: &InputTextMessageContent{
			MessageText: "текст",
		},
	}}

	err := client.AnswerInlineQuery(context.Background(), "iq-1", results, 30)
	require.NoError(t, err)

	assert.Equal(t, "iq-1", gotBody["inline_query_id"])
	assert.Equal(t, float64(30), gotBody["cache_time"])

	rawResults, ok := gotBody["results"].([]interface{})
	require.True(t, ok)
	require.Len(t, rawResults, 1)
}

func TestClient_EditMessageText(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/editMessageText", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		respondOK(t, w, Message{MessageID: 12, Text: "updated"})
	})

	msg, err := client.EditMessageText(context.Background(), EditMessageTextParams{
		ChatID:    "77",
		MessageID: 12,
		Text:      "updated",
	})
	require.NoError(t, err)

	assert.Equal(t, float64(12), gotBody["message_id"])
	assert.Equal(t, "updated", gotBody["text"])
	assert.Equal(t, "updated", msg.Text)
}

func TestClient_GetMe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/getMe", r.URL.Path)
		respondOK(t, w, User{ID: 1, IsBot: true, UserName: "gateway_bot"})
	})

	user, err := client.GetMe(context.Background())
	require.NoError(t, err)

	assert.True(t, user.IsBot)
	assert.Equal(t, "gateway_bot", user.UserName)
}

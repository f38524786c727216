package bot_webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
	"github.com/m04kA/SMC-BotGateway/internal/service/updates"
)

type fakeSender struct {
	calls []botapi.SendMessageParams
	raw   json.RawMessage
}

func (f *fakeSender) SendMessageRaw(_ context.Context, params botapi.SendMessageParams) (json.RawMessage, error) {
	f.calls = append(f.calls, params)
	return f.raw, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestHandler(sender *fakeSender, botHandler dispatch.Handler) *Handler {
	dispatcher := dispatch.NewService(updates.NewService(), sender, nopLogger{}, nil)
	return NewHandler(dispatcher, botHandler, nopLogger{})
}

func serve(h *Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_NoReply(t *testing.T) {
	sender := &fakeSender{}
	h := newTestHandler(sender, func(context.Context, *botapi.Update) dispatch.Result {
		return dispatch.NoReply()
	})

	rec := serve(h, []byte(`{"message":{"text":"hi","chat":{"id":1}}}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(HeaderDirectReply))
	assert.Empty(t, rec.Body.Bytes())
	assert.Empty(t, sender.calls)
}

func TestHandler_Handle_DirectReply(t *testing.T) {
	raw := json.RawMessage(`{"message_id":1,"text":"change"}`)
	sender := &fakeSender{raw: raw}
	h := newTestHandler(sender, func(context.Context, *botapi.Update) dispatch.Result {
		return dispatch.TextReply("change")
	})

	rec := serve(h, []byte(`{"message":{"text":"/change","chat":{"id":"fake-chat-id"}}}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(HeaderDirectReply))
	assert.JSONEq(t, string(raw), rec.Body.String())

	require.Len(t, sender.calls, 1)
	assert.Equal(t, botapi.ChatID("fake-chat-id"), sender.calls[0].ChatID)
	assert.Equal(t, "change", sender.calls[0].Text)
}

func TestHandler_Handle_InvalidJSON(t *testing.T) {
	sender := &fakeSender{}
	h := newTestHandler(sender, func(context.Context, *botapi.Update) dispatch.Result {
		t.Fatal("handler must not run on invalid JSON")
		return dispatch.NoReply()
	})

	rec := serve(h, []byte(`{"message":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sender.calls)
	assert.Contains(t, rec.Body.String(), "неверный формат тела запроса")
}

package start_message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
	"github.com/m04kA/SMC-BotGateway/internal/usecase/start_message/templates"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUseCase_Handle_StartCommand(t *testing.T) {
	uc := New(nopLogger{})

	update := &botapi.Update{Message: &botapi.Message{
		Text: "/start",
		From: &botapi.User{ID: 9},
		Chat: &botapi.Chat{ID: "9"},
	}}

	result := uc.Handle(context.Background(), update)
	assert.Equal(t, dispatch.TextReply(templates.WelcomeMessageText), result)
}

func TestUseCase_Handle_IgnoresOtherUpdates(t *testing.T) {
	uc := New(nopLogger{})

	cases := []struct {
		name   string
		update *botapi.Update
	}{
		{"other command", &botapi.Update{Message: &botapi.Message{Text: "/help", Chat: &botapi.Chat{ID: "1"}}}},
		{"plain text", &botapi.Update{Message: &botapi.Message{Text: "привет", Chat: &botapi.Chat{ID: "1"}}}},
		{"no message", &botapi.Update{CallbackQuery: &botapi.CallbackQuery{ID: "cb"}}},
		{"empty text", &botapi.Update{Message: &botapi.Message{Chat: &botapi.Chat{ID: "1"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := uc.Handle(context.Background(), tc.update)
			assert.Equal(t, dispatch.NoReply(), result)
		})
	}
}

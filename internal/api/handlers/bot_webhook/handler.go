package bot_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-BotGateway/internal/api/handlers"
	"github.com/m04kA/SMC-BotGateway/internal/service/dispatch"
	"github.com/m04kA/SMC-BotGateway/internal/service/updates"
)

const msgInvalidRequestBody = "неверный формат тела запроса"

// HeaderDirectReply помечает ответы, для которых диспетчер отправил автоответ
const HeaderDirectReply = "X-Direct-Reply"

type Handler struct {
	dispatcher Dispatcher
	botHandler dispatch.Handler
	logger     Logger
}

func NewHandler(dispatcher Dispatcher, botHandler dispatch.Handler, logger Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		botHandler: botHandler,
		logger:     logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("Failed to read webhook body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	defer r.Body.Close()

	resp, err := h.dispatcher.Dispatch(r.Context(), h.botHandler, body)
	if err != nil {
		// Некорректный JSON - ошибка вызывающей стороны, не прячем её за 200
		if errors.Is(err, updates.ErrDecodeUpdate) {
			h.logger.Warn("Failed to decode webhook update: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}

		h.logger.Error("Failed to dispatch webhook update: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if resp.DirectReply {
		w.Header().Set(HeaderDirectReply, "true")
	}
	if len(resp.Body) > 0 {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		// Ошибку записи клиенту уже не вернуть
		_, _ = w.Write(resp.Body)
	}
}

package updates

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-BotGateway/internal/integrations/botapi"
)

// Service адаптер входящих webhook-обновлений
// Приводит сырое тело webhook-запроса к той же структуре Update,
// которую возвращает getUpdates, чтобы обработчики не зависели от режима доставки
type Service struct{}

// NewService создает новый экземпляр адаптера
func NewService() *Service {
	return &Service{}
}

// Adapt декодирует тело webhook-запроса в Update
// Функция чистая: одинаковое тело всегда даёт одинаковый результат
func (s *Service) Adapt(body []byte) (*botapi.Update, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrDecodeUpdate)
	}

	var update botapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeUpdate, err)
	}

	return &update, nil
}

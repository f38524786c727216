package updates

import "errors"

var (
	// ErrDecodeUpdate возвращается, когда тело webhook-запроса не является корректным JSON
	ErrDecodeUpdate = errors.New("service.updates: failed to decode update")
)

package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HeaderRequestID заголовок сквозного идентификатора запроса
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware проставляет идентификатор запроса, если его нет
func RequestIDMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(HeaderRequestID, requestID)
			}

			w.Header().Set(HeaderRequestID, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// requestIDKey — ключ контекста, под которым хранится ID запроса.
const requestIDKey ctxKey = "request_id"

// RequestIDHeader — заголовок, в котором ID запроса приходит и уходит.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen — входящие ID длиннее этого заменяются новыми.
const maxRequestIDLen = 128

// ContextWithRequestID кладёт ID запроса в контекст.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext извлекает ID запроса из контекста.
//
// Возвращает:
//   - requestID
//   - false, если middleware RequestID не выполнялся
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	s, ok := v.(string)
	return s, ok
}

// RequestID возвращает middleware, которое присваивает каждому запросу ID.
//
// Middleware:
//   - берёт ID из заголовка X-Request-ID, если он есть и разумной длины;
//   - иначе генерирует новый UUID;
//   - сохраняет ID в context.Context и отдаёт его в заголовке ответа.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
		})
	}
}

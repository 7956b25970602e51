package middleware

import "net/http"

// BodyLimit ограничивает размер тела запроса.
// При превышении json-декодер в хендлере получит ошибку и ответит 400.
// limit <= 0 отключает ограничение.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

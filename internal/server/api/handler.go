// Package api реализует HTTP-слой сервиса пользователей.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - логирование непредвиденных ошибок хранилища.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-users-api/internal/shared/logger"
	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
	"go.uber.org/zap"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок.
type Handler struct {
	Svc *service.Services
	Log *logger.HTTPLogger
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// Если log == nil, используется логгер, который ничего не пишет.
func NewHandler(svc *service.Services, log *logger.HTTPLogger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		Svc: svc,
		Log: log,
	}
}

// WriteJSON пишет тело ответа в JSON с нужным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, message string, err error) {
	WriteJSON(w, status, sharedModels.ErrorResponse{
		Message: message,
		Error:   err.Error(),
	})
}

// logUnexpected пишет в лог ошибку хранилища вместе с ID запроса.
func (h *Handler) logUnexpected(r *http.Request, msg string, err error, fields ...zap.Field) {
	requestID, _ := middleware.RequestIDFromContext(r.Context())
	fields = append(fields, zap.Error(err), zap.String("request_id", requestID))
	h.Log.Error(msg, fields...)
}

package api

import (
	"io"
	"net/http"
)

// HealthText — ответ корневого маршрута.
const HealthText = "User REST API is running"

// Health отвечает статической строкой для проверки, что сервис жив.
//
// @Summary      Health check
// @Tags         health
// @Produce      plain
// @Success      200 {string} string "User REST API is running"
// @Router       / [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentType, "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, HealthText)
}

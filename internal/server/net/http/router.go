// Package http реализует маршрутизацию HTTP-слоя сервиса пользователей.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - подключение middleware (recover, request id, логирование, лимит тела);
//   - раздачу swagger UI.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/middleware"
)

// Options — необязательные настройки роутера.
type Options struct {
	MaxBodyBytes int64 // 0 — без ограничения
	Swagger      bool  // раздавать /swagger/*
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - GET / — health-check строкой;
//   - CRUD эндпоинты пользователей под префиксом /users;
//   - swagger UI, если он включён.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	// паника в хендлере превращается в 500, а не роняет процесс
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID())
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Get("/", h.Health)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)       // создание
		r.Get("/", h.ListUsers)         // все пользователи, без пагинации
		r.Get("/{id}", h.GetUser)       // поиск по id
		r.Put("/{id}", h.UpdateUser)    // частичное обновление
		r.Delete("/{id}", h.DeleteUser) // удаление
	})

	return r
}

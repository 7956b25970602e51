package models

import "time"

// User — модель пользователя в том виде, в каком она ходит по HTTP API.
//
// Поля:
//   - ID: идентификатор (hex ObjectID, 24 символа), выдаётся сервером
//   - Name: имя, не короче 2 символов
//   - Email: уникальный email в нижнем регистре
//   - Age: возраст, необязательный
//   - CreatedAt/UpdatedAt: серверные метки времени
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest — запрос на создание пользователя.
//
// Используется в:
//
//	POST /users
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age,omitempty"`
}

// UpdateUserRequest — запрос на частичное обновление пользователя.
//
// Используется в:
//
//	PUT /users/{id}
//
// Поля — указатели, чтобы передавать только изменяемые значения.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
}

// MessageResponse — ответ вида {"message": "...", "id": "..."}.
//
// Используется в:
//
//	GET    /users/{id}
//	DELETE /users/{id}
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// UsersDump — формат файла, в который CLI выгружает список пользователей.
type UsersDump struct {
	Users []User `json:"users"`
}

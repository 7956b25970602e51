package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// Сообщения, которые API отдаёт в поле "message".
const (
	msgCreateFailed = "Failed to create user"
	msgListFailed   = "Failed to fetch users"
	msgGetFailed    = "Failed to get user"
	msgUpdateFailed = "Failed to update user"
	msgDeleteFailed = "Failed to delete user"
	msgNotFound     = "User not found"
	msgFound        = "User is"
	msgDeleted      = "User deleted"
)

// errEmailTaken — текст ошибки для дубликата email.
var errEmailTaken = errors.New("email already exists")

// decodeBody декодирует JSON тела запроса. Пустое тело считается пустым объектом.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return serr.ErrBadJSON
	}
	return nil
}

// decodePatch разбирает тело PUT в патч.
//
// Явный null отличается от отсутствующего поля: null для name и email
// превращается в пустую строку и не проходит валидацию, null для age
// удаляет возраст.
func decodePatch(r *http.Request) (models.UserPatch, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return models.UserPatch{}, serr.ErrBadJSON
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return models.UserPatch{}, nil
	}

	var req sharedModels.UpdateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return models.UserPatch{}, serr.ErrBadJSON
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.UserPatch{}, serr.ErrBadJSON
	}

	patch := models.UserPatch{Name: req.Name, Email: req.Email, Age: req.Age}
	if isNull(raw, "name") {
		patch.Name = new(string)
	}
	if isNull(raw, "email") {
		patch.Email = new(string)
	}
	patch.ClearAge = isNull(raw, "age")
	return patch, nil
}

func isNull(raw map[string]json.RawMessage, key string) bool {
	v, ok := raw[key]
	return ok && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// CreateUser создаёт нового пользователя.
//
// Ответы:
//   - 201 Created: пользователь создан, в теле — запись;
//   - 400 Bad Request: неверный JSON, невалидные поля, занятый email или ошибка хранилища.
//
// @Summary      Create user
// @Description  Validates the fields, normalizes the email and stores a new user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body sharedModels.CreateUserRequest true "User fields"
// @Success      201 {object} sharedModels.User
// @Failure      400 {object} sharedModels.ErrorResponse "Validation or store failure"
// @Router       /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req sharedModels.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, msgCreateFailed, err)
		return
	}

	u, err := h.Svc.Users.Create(r.Context(), service.UserInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, msgCreateFailed, err)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, msgCreateFailed, errEmailTaken)
		default:
			h.logUnexpected(r, "create user failed", err)
			WriteError(w, http.StatusBadRequest, msgCreateFailed, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, u.ToAPI())
}

// ListUsers возвращает всех пользователей без пагинации.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200 {array}  sharedModels.User
// @Failure      500 {object} sharedModels.ErrorResponse "Store failure"
// @Router       /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.Users.List(r.Context())
	if err != nil {
		h.logUnexpected(r, "list users failed", err)
		WriteError(w, http.StatusInternalServerError, msgListFailed, serr.ErrInternal)
		return
	}

	out := make([]sharedModels.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToAPI())
	}
	WriteJSON(w, http.StatusOK, out)
}

// GetUser ищет пользователя по id.
//
// Ответы:
//   - 200 OK: {"message":"User is","id":"..."};
//   - 400 Bad Request: id некорректен или ошибка хранилища;
//   - 404 Not Found: пользователя нет.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID (ObjectID hex)"
// @Success      200 {object} sharedModels.MessageResponse
// @Failure      400 {object} sharedModels.ErrorResponse "Bad id or store failure"
// @Failure      404 {object} sharedModels.ErrorResponse "Not found"
// @Router       /users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.Svc.Users.Get(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, msgGetFailed, err, "get user failed", id)
		return
	}

	WriteJSON(w, http.StatusOK, sharedModels.MessageResponse{
		Message: msgFound,
		ID:      u.ID.Hex(),
	})
}

// UpdateUser частично обновляет пользователя по id.
//
// Переданные поля проверяются по тем же правилам, что и при создании.
// "age": null удаляет возраст, null для name или email даёт 400.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path      string  true  "User ID (ObjectID hex)"
// @Param        body    body      sharedModels.UpdateUserRequest  true  "Fields to change"
// @Success      200 {object} sharedModels.User
// @Failure      400 {object} sharedModels.ErrorResponse "Bad id, validation or store failure"
// @Failure      404 {object} sharedModels.ErrorResponse "Not found"
// @Router       /users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	patch, err := decodePatch(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, msgUpdateFailed, err)
		return
	}

	u, err := h.Svc.Users.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			WriteError(w, http.StatusBadRequest, msgUpdateFailed, errEmailTaken)
			return
		}
		h.writeLookupError(w, r, msgUpdateFailed, err, "update user failed", id)
		return
	}

	WriteJSON(w, http.StatusOK, u.ToAPI())
}

// DeleteUser удаляет пользователя по id.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID (ObjectID hex)"
// @Success      200 {object} sharedModels.MessageResponse
// @Failure      400 {object} sharedModels.ErrorResponse "Bad id or store failure"
// @Failure      404 {object} sharedModels.ErrorResponse "Not found"
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deletedID, err := h.Svc.Users.Delete(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, msgDeleteFailed, err, "delete user failed", id)
		return
	}

	WriteJSON(w, http.StatusOK, sharedModels.MessageResponse{
		Message: msgDeleted,
		ID:      deletedID.Hex(),
	})
}

// writeLookupError — общий маппинг ошибок для маршрутов с {id}:
// нет записи — 404, всё остальное — 400.
func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, message string, err error, logMsg, id string) {
	switch {
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, msgNotFound, serr.ErrNotFound)
	case errors.Is(err, serr.ErrInvalidID), errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, message, err)
	default:
		h.logUnexpected(r, logMsg, err, zap.String("user_id", id))
		WriteError(w, http.StatusBadRequest, message, serr.ErrInternal)
	}
}

package api

import (
	"context"
	"net/url"

	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// Health проверяет, что сервер поднят.
//
//	GET /
func (c *Client) Health(ctx context.Context) (string, error) {
	return c.GetText(ctx, "/")
}

// CreateUser создаёт пользователя.
//
//	POST /users
//
// Возвращает сохранённую запись (с id и метками времени).
func (c *Client) CreateUser(ctx context.Context, req sharedModels.CreateUserRequest) (sharedModels.User, error) {
	var resp sharedModels.User
	err := c.PostJSON(ctx, "/users", req, &resp)
	return resp, err
}

// ListUsers возвращает всех пользователей.
//
//	GET /users
func (c *Client) ListUsers(ctx context.Context) ([]sharedModels.User, error) {
	var resp []sharedModels.User
	if err := c.GetJSON(ctx, "/users", &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []sharedModels.User{}
	}
	return resp, nil
}

// GetUser ищет пользователя по id.
//
//	GET /users/{id}
//
// Сервер отвечает только подтверждением {"message":"User is","id":...},
// поля пользователя не возвращаются.
func (c *Client) GetUser(ctx context.Context, id string) (sharedModels.MessageResponse, error) {
	var resp sharedModels.MessageResponse
	err := c.GetJSON(ctx, "/users/"+url.PathEscape(id), &resp)
	return resp, err
}

// UpdateUser частично обновляет пользователя. В req передаются
// только изменяемые поля (nil-указатели не сериализуются).
//
//	PUT /users/{id}
func (c *Client) UpdateUser(ctx context.Context, id string, req sharedModels.UpdateUserRequest) (sharedModels.User, error) {
	var resp sharedModels.User
	err := c.PutJSON(ctx, "/users/"+url.PathEscape(id), req, &resp)
	return resp, err
}

// DeleteUser удаляет пользователя по id.
//
//	DELETE /users/{id}
func (c *Client) DeleteUser(ctx context.Context, id string) (sharedModels.MessageResponse, error) {
	var resp sharedModels.MessageResponse
	err := c.DeleteJSON(ctx, "/users/"+url.PathEscape(id), &resp)
	return resp, err
}

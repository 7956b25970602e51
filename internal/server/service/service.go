// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/models"
)

//go:generate mockgen -destination=mocks/mock_repos.go -package=mocks . UsersRepo

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users *UsersService
}

// NewServices собирает все сервисы приложения.
func NewServices(repos Repositories) *Services {
	return &Services{
		Users: NewUsersService(repos.Users),
	}
}

// UsersRepo — репозиторий пользователей (CRUD).
//
// Реализации обязаны возвращать ошибки из internal/shared/errors:
// ErrNotFound, ErrAlreadyExists, ErrInternal.
type UsersRepo interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

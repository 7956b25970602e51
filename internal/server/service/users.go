package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
)

// UsersService реализует бизнес-логику работы с пользователями.
// Сервис:
//   - нормализует и валидирует входные данные;
//   - разбирает идентификаторы;
//   - не знает о HTTP и БД напрямую.
type UsersService struct {
	repo UsersRepo
	now  func() time.Time
}

// NewUsersService создаёт новый UsersService.
func NewUsersService(repo UsersRepo) *UsersService {
	return &UsersService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// UserInput — поля, которые клиент передаёт при создании пользователя.
type UserInput struct {
	Name  string
	Email string
	Age   *int
}

// Create создаёт нового пользователя.
//
// Валидации:
//   - name обязателен, не короче 2 символов после trim;
//   - email обязателен, приводится к нижнему регистру;
//   - age, если задан, >= 0.
//
// Ошибки:
//   - *ValidationError (ErrInvalidInput) — невалидные данные;
//   - ErrAlreadyExists — email уже занят;
//   - ErrInternal — ошибка хранилища.
func (s *UsersService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	// Mongo хранит время с точностью до миллисекунд
	now := s.now().Truncate(time.Millisecond)

	u := &models.User{
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	NormalizeUser(u)
	if err := ValidateUser(u); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, u)
}

// List возвращает всех пользователей. Никогда не возвращает nil-слайс.
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Get ищет пользователя по id.
//
// Ошибки:
//   - ErrInvalidID — id не является ObjectID;
//   - ErrNotFound — пользователя нет.
func (s *UsersService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

// Update частично обновляет пользователя.
//
// Проверяются только переданные поля. updatedAt обновляется всегда,
// даже если патч пустой.
func (s *UsersService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	NormalizePatch(&patch)
	if err := ValidatePatch(&patch); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, oid, patch)
}

// Delete удаляет пользователя и возвращает id удалённой записи.
func (s *UsersService) Delete(ctx context.Context, id string) (primitive.ObjectID, error) {
	oid, err := ParseID(id)
	if err != nil {
		return primitive.NilObjectID, err
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return deleted.ID, nil
}

// ParseID разбирает hex-представление ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, serr.ErrInvalidID
	}
	return oid, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
)

// UsersRepository реализует доступ к коллекции пользователей (MongoDB).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
type UsersRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

// NewUsersRepository создаёт новый экземпляр UsersRepository.
//
// timeout ограничивает каждую операцию с базой; 0 — без отдельного таймаута.
func NewUsersRepository(coll *mongo.Collection, timeout time.Duration) *UsersRepository {
	return &UsersRepository{
		coll:    coll,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// EnsureIndexes создаёт уникальный индекс по email.
// Повторный вызов ничего не меняет.
func (r *UsersRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_1"),
	})
	if err != nil {
		return fmt.Errorf("%w: create email index: %v", serr.ErrInternal, err)
	}
	return nil
}

// Create сохраняет нового пользователя.
//
// Возвращает запись с id, выданным хранилищем.
//
// Ошибки:
//   - ErrAlreadyExists — email уже занят
//   - ErrInternal — ошибка базы данных
func (r *UsersRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := *u
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

// List возвращает всех пользователей в порядке создания.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	defer cur.Close(ctx)

	users := make([]models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// GetByID ищет пользователя по id.
//
// Ошибки:
//   - ErrNotFound — записи нет
//   - ErrInternal — ошибка базы данных
func (r *UsersRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// Update применяет патч через $set (и $unset для ClearAge) и возвращает
// запись после изменения. updatedAt обновляется всегда.
func (r *UsersRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Age != nil {
		set = append(set, bson.E{Key: "age", Value: *patch.Age})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: r.now().Truncate(time.Millisecond)})

	update := bson.D{{Key: "$set", Value: set}}
	if patch.ClearAge && patch.Age == nil {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "age", Value: ""}}})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// Delete удаляет пользователя и возвращает удалённую запись.
func (r *UsersRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// translate маппит ошибки драйвера на доменные.
// Исходная ошибка остаётся в тексте для логов.
func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return serr.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return serr.ErrAlreadyExists
	default:
		return fmt.Errorf("%w: %v", serr.ErrInternal, err)
	}
}

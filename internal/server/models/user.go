// Серверная модель пользователя
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// User — документ коллекции users.
//
// Теги validate проверяются перед записью в хранилище.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name" validate:"required,min=2"`
	Email     string             `bson:"email" validate:"required"`
	Age       *int               `bson:"age,omitempty" validate:"omitnil,gte=0"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// UserPatch — набор полей для частичного обновления.
// nil означает "поле не меняется".
//
// required для указателя проверяет только nil, поэтому непустое значение
// задаётся через min.
type UserPatch struct {
	Name  *string `validate:"omitnil,min=2"`
	Email *string `validate:"omitnil,min=1"`
	Age   *int    `validate:"omitnil,gte=0"`
	// ClearAge удаляет возраст из записи (в запросе пришло "age": null).
	ClearAge bool
}

// ToAPI переводит документ в модель HTTP API.
func (u User) ToAPI() sharedModels.User {
	return sharedModels.User{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-users-api/internal/shared/utils"
)

// helper: создаёт UsersService с моком репозитория
func newTestUsersService(t *testing.T) (*service.UsersService, *mocks.MockUsersRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUsersRepo(ctrl)
	return service.NewUsersService(repo), repo
}

// Успешное создание: email нормализуется, метки времени проставлены
func TestUsersService_Create_OK(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) (*models.User, error) {
			require.Equal(t, "Al", u.Name)
			require.Equal(t, "a@x.com", u.Email)
			require.Equal(t, 30, *u.Age)
			require.False(t, u.CreatedAt.IsZero())
			require.Equal(t, u.CreatedAt, u.UpdatedAt)

			saved := *u
			saved.ID = primitive.NewObjectID()
			return &saved, nil
		})

	u, err := svc.Create(context.Background(), service.UserInput{
		Name:  "  Al ",
		Email: " A@X.com ",
		Age:   utils.Ptr(30),
	})

	require.NoError(t, err)
	require.False(t, u.ID.IsZero())
	require.Equal(t, "a@x.com", u.Email)
}

func TestUsersService_Create_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    service.UserInput
		field string
	}{
		{"short name", service.UserInput{Name: "A", Email: "a@x.com"}, "name"},
		{"name only spaces", service.UserInput{Name: "   ", Email: "a@x.com"}, "name"},
		{"missing email", service.UserInput{Name: "Alice", Email: "  "}, "email"},
		{"negative age", service.UserInput{Name: "Alice", Email: "a@x.com", Age: utils.Ptr(-1)}, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// репозиторий не должен вызываться
			svc, _ := newTestUsersService(t)

			_, err := svc.Create(context.Background(), tt.in)
			require.ErrorIs(t, err, serr.ErrInvalidInput)

			var verr *serr.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

// Имя из двух символов — граница допустимого
func TestUsersService_Create_TwoRuneName(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) (*models.User, error) { return u, nil })

	_, err := svc.Create(context.Background(), service.UserInput{Name: "Яо", Email: "y@x.com"})
	require.NoError(t, err)
}

func TestUsersService_Create_Duplicate(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, serr.ErrAlreadyExists)

	_, err := svc.Create(context.Background(), service.UserInput{Name: "Alice", Email: "a@x.com"})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func TestUsersService_List_NilBecomesEmpty(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)

	repo.EXPECT().List(gomock.Any()).Return(nil, nil)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestUsersService_List_RepoError(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)

	repo.EXPECT().List(gomock.Any()).Return(nil, serr.ErrInternal)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestUsersService_Get(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().GetByID(gomock.Any(), id).Return(&models.User{ID: id, Name: "Alice"}, nil)

	u, err := svc.Get(context.Background(), id.Hex())
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
}

func TestUsersService_Get_InvalidID(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUsersService(t)

	_, err := svc.Get(context.Background(), "not-an-id")
	require.ErrorIs(t, err, serr.ErrInvalidID)
}

func TestUsersService_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, serr.ErrNotFound)

	_, err := svc.Get(context.Background(), id.Hex())
	require.ErrorIs(t, err, serr.ErrNotFound)
}

// Патч нормализуется перед отправкой в репозиторий
func TestUsersService_Update_NormalizesPatch(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().
		Update(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ primitive.ObjectID, p models.UserPatch) (*models.User, error) {
			require.Nil(t, p.Name)
			require.Equal(t, "new@x.com", *p.Email)
			return &models.User{ID: id, Email: *p.Email}, nil
		})

	u, err := svc.Update(context.Background(), id.Hex(), models.UserPatch{Email: utils.Ptr("  NEW@X.com")})
	require.NoError(t, err)
	require.Equal(t, "new@x.com", u.Email)
}

func TestUsersService_Update_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		patch models.UserPatch
	}{
		{"short name", models.UserPatch{Name: utils.Ptr("B")}},
		{"empty email", models.UserPatch{Email: utils.Ptr("   ")}},
		{"negative age", models.UserPatch{Age: utils.Ptr(-3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestUsersService(t)

			_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), tt.patch)
			require.ErrorIs(t, err, serr.ErrInvalidInput)
		})
	}
}

// Пустой патч валиден: репозиторий обновит только updatedAt
func TestUsersService_Update_EmptyPatch(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().Update(gomock.Any(), id, models.UserPatch{}).Return(&models.User{ID: id}, nil)

	_, err := svc.Update(context.Background(), id.Hex(), models.UserPatch{})
	require.NoError(t, err)
}

func TestUsersService_Update_NotFound(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil, serr.ErrNotFound)

	_, err := svc.Update(context.Background(), id.Hex(), models.UserPatch{Age: utils.Ptr(5)})
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestUsersService_Update_InvalidID(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUsersService(t)

	_, err := svc.Update(context.Background(), "123", models.UserPatch{})
	require.ErrorIs(t, err, serr.ErrInvalidID)
}

func TestUsersService_Delete(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().Delete(gomock.Any(), id).Return(&models.User{ID: id}, nil)

	got, err := svc.Delete(context.Background(), id.Hex())
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestUsersService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUsersService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().Delete(gomock.Any(), id).Return(nil, serr.ErrNotFound)

	_, err := svc.Delete(context.Background(), id.Hex())
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestUsersService_Delete_InvalidID(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUsersService(t)

	_, err := svc.Delete(context.Background(), "zzz")
	require.ErrorIs(t, err, serr.ErrInvalidID)
}

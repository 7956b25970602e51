// Package memory хранит на стороне CLI последний полученный с сервера
// список пользователей и умеет выгружать его в файл.
package memory

import (
	"sort"
	"sync"

	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// UsersStore — потокобезопасное in-memory хранилище пользователей.
//
// Используется CLI для:
//   - полной замены состояния после list (ReplaceAll)
//   - выдачи пользователя по ID (Get)
//   - получения списка в стабильном порядке (List)
type UsersStore struct {
	mu    sync.RWMutex
	users map[string]sharedModels.User
}

// NewUsers создаёт пустое хранилище.
func NewUsers() *UsersStore {
	return &UsersStore{
		users: make(map[string]sharedModels.User),
	}
}

// Get возвращает пользователя по ID.
//
// Если пользователя нет — возвращает serr.ErrNotFound.
func (s *UsersStore) Get(id string) (sharedModels.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return sharedModels.User{}, serr.ErrNotFound
	}
	return u, nil
}

// ReplaceAll полностью заменяет содержимое стора переданным списком.
// Дубликаты по ID: побеждает последний.
func (s *UsersStore) ReplaceAll(users []sharedModels.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]sharedModels.User, len(users))
	for _, u := range users {
		s.users[u.ID] = u
	}
}

// List возвращает всех пользователей, отсортированных по ID.
// ObjectID начинается с метки времени, так что это порядок создания.
func (s *UsersStore) List() []sharedModels.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]sharedModels.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len возвращает количество пользователей.
func (s *UsersStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

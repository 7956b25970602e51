package memory

import (
	"encoding/json"
	"os"
	"path/filepath"

	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// SaveToFile сохраняет содержимое store в JSON-файл path.
//
// Поведение:
//   - создаёт директорию для файла (MkdirAll) с правами 0700;
//   - сохраняет файл с правами 0600;
//   - формат: {"users":[...]} с отступами, пользователи отсортированы по ID.
func SaveToFile(path string, store *UsersStore) error {
	out := sharedModels.UsersDump{Users: store.List()}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// LoadFromFile загружает пользователей из JSON-файла в store.
//
// Поведение:
//   - если файла нет — возвращает nil, store не меняется;
//   - если JSON некорректный — возвращает ошибку;
//   - иначе полностью заменяет содержимое store.
func LoadFromFile(path string, store *UsersStore) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var dump sharedModels.UsersDump
	if err := json.Unmarshal(b, &dump); err != nil {
		return err
	}

	store.ReplaceAll(dump.Users)
	return nil
}

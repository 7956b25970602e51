// Package cli реализует командный интерфейс клиента usersctl.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - вызов HTTP API сервера пользователей и вывод результата.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:3000"

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:3000").
	ServerURL string
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{ServerURL: DefaultServerURL}

	cmd := &cobra.Command{
		Use:   "usersctl",
		Short: "usersctl — клиент REST API пользователей",
		Long: `usersctl — консольный клиент REST API пользователей.

Команды:
  health   Проверить, что сервер поднят
  create   Создать пользователя
  list     Список пользователей (опционально выгрузить в файл)
  get      Проверить, что пользователь существует
  update   Изменить поля пользователя
  delete   Удалить пользователя
  version  Версия и дата сборки

Примеры:
  usersctl create --name Alice --email alice@example.com --age 30
  usersctl list --out ./users.json
  usersctl update <id> --age 31
  usersctl --server http://10.0.0.5:3000 delete <id>
`,
		SilenceUsage: true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")

	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(UserCreate(app))
	cmd.AddCommand(UserList(app))
	cmd.AddCommand(UserGet(app))
	cmd.AddCommand(UserUpdate(app))
	cmd.AddCommand(UserDelete(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

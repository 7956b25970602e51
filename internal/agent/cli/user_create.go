package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// UserCreate создаёт команду создания пользователя.
//
// Поля проверяет сервер: имя не короче 2 символов, email обязателен
// и уникален, age >= 0. Флаг --age необязательный: если он не указан,
// возраст не отправляется.
//
// В случае успеха печатает созданную запись в JSON.
//
//	usersctl create --name Alice --email alice@example.com --age 30
func UserCreate(app *App) *cobra.Command {
	var (
		name  string
		email string
		age   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.CreateUserRequest{Name: name, Email: email}
			if cmd.Flags().Changed("age") {
				req.Age = &age
			}

			u, err := NewAPIClient(app.ServerURL).CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "user name (min 2 characters)")
	cmd.Flags().StringVar(&email, "email", "", "user email (unique)")
	cmd.Flags().IntVar(&age, "age", 0, "user age (optional, >= 0)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

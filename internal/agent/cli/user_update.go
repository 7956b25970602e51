package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// UserUpdate создаёт команду частичного обновления пользователя.
//
// На сервер отправляются только поля, флаги которых явно указаны.
// Если не указан ни один флаг, запрос не отправляется.
//
//	usersctl update <id> --name "Alice B"
//	usersctl update <id> --email new@example.com --age 31
func UserUpdate(app *App) *cobra.Command {
	var (
		name  string
		email string
		age   int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить поля пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.UpdateUserRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}
			if cmd.Flags().Changed("age") {
				req.Age = &age
			}
			if req.Name == nil && req.Email == nil && req.Age == nil {
				return errors.New("nothing to update: set at least one of --name, --email, --age")
			}

			u, err := NewAPIClient(app.ServerURL).UpdateUser(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().IntVar(&age, "age", 0, "new age")

	return cmd
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-api/internal/agent/memory"
	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
)

// UserGet создаёт команду проверки пользователя по id.
//
// Сервер отвечает только подтверждением {"message":"User is","id":...},
// его команда и печатает. С флагом --from запись целиком берётся из файла,
// сохранённого через list --out, без обращения к серверу.
//
//	usersctl get <id>
//	usersctl get <id> --from ./users.json
func UserGet(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Проверить, что пользователь существует",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				return getFromFile(cmd, from, args[0])
			}

			resp, err := NewAPIClient(app.ServerURL).GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "read the user from a file written by list --out")
	return cmd
}

func getFromFile(cmd *cobra.Command, path, id string) error {
	store := memory.NewUsers()
	if err := LoadUsersFromFile(path, store); err != nil {
		return fmt.Errorf("load users from %s: %w", path, err)
	}
	if store.Len() == 0 {
		return fmt.Errorf("no users in %s", path)
	}

	u, err := store.Get(id)
	if errors.Is(err, serr.ErrNotFound) {
		return fmt.Errorf("user %s not found in %s", id, path)
	}
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), u)
}

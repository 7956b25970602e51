package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-api/internal/agent/api"
)

// UserDelete создаёт команду удаления пользователя по id.
//
// В случае успеха выводит: "deleted user <id>".
// С --ignore-not-found ответ 404 не считается ошибкой.
func UserDelete(app *App) *cobra.Command {
	var ignoreNotFound bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить пользователя",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := NewAPIClient(app.ServerURL).DeleteUser(cmd.Context(), args[0])
			if err != nil {
				if ignoreNotFound && api.IsNotFound(err) {
					fmt.Fprintf(cmd.OutOrStdout(), "user %s not found, nothing to delete\n", args[0])
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", resp.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreNotFound, "ignore-not-found", false, "treat a missing user as success")
	return cmd
}

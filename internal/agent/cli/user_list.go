package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-api/internal/agent/memory"
)

// UserList создаёт команду получения списка пользователей.
//
// Печатает по строке на пользователя: id, name, email, age, created_at.
// С флагом --out дополнительно сохраняет список в JSON-файл
// вида {"users":[...]} с правами 0600.
//
//	usersctl list
//	usersctl list --out ./users.json
func UserList(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список пользователей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := NewAPIClient(app.ServerURL).ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			store := memory.NewUsers()
			store.ReplaceAll(users)

			if out != "" {
				if err := SaveUsersToFile(out, store); err != nil {
					return fmt.Errorf("save users to %s: %w", out, err)
				}
			}

			items := store.List()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no users")
				return nil
			}

			for _, u := range items {
				age := "-"
				if u.Age != nil {
					age = strconv.Itoa(*u.Age)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
					u.ID, u.Name, u.Email, age, u.CreatedAt.Format("2006-01-02 15:04:05"),
				)
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d users to %s\n", len(items), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write users as JSON to this file")
	return cmd
}

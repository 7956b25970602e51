package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd создаёт команду health: GET / и печать ответа сервера.
func NewHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Проверить, что сервер поднят",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := NewAPIClient(app.ServerURL).Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

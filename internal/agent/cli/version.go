package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт команду, которая печатает версию клиента,
// дату сборки и версию Go, которой он собран.
//
//	usersctl version
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(),
				"version=%s\nbuild_date=%s\ngo=%s\n",
				buildVersion, buildDate, runtime.Version(),
			)
		},
	}
}

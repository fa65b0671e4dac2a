package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPluginsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the registered plugins by role",
		RunE: func(_ *cobra.Command, _ []string) error {
			result := newAppService().ListPlugins()
			if len(result.Plugins) == 0 {
				fmt.Println("no plugins registered")
				return nil
			}
			for _, p := range result.Plugins {
				fmt.Printf("%s\t%s\n", p.Role, p.Name)
			}
			return nil
		},
	}
}

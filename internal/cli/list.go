package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd creates the 'list' command
func NewListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available instruction builders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, def := range builderDefs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", def.name, def.short)
			}
			return nil
		},
	}
}

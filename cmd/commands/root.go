package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Define root command
	rootCmd := &cobra.Command{
		Use:   "docstore",
		Short: "Paginated access to MongoDB collections",
	}

	// Add subcommands
	rootCmd.AddCommand(
		NewQueryCommand(),
		NewCursorCommand(),
		NewHealthCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

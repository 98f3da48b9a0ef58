package cli

import "github.com/spf13/cobra"

// NewRootCmd assembles the concierge command tree
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "concierge",
		Short: "Portfolio concierge - offline tools for the portfolio widget",
		Long: `Concierge resolves questions against a knowledge record and manages the
records the server answers from.

Environment variables:
  CONCIERGE_DATABASE_URL   Postgres URL used by push`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(AskCmd())
	rootCmd.AddCommand(ValidateCmd())
	rootCmd.AddCommand(HashPasswordCmd())
	rootCmd.AddCommand(PushCmd())

	return rootCmd
}

package main

import (
	"os"

	"github.com/aretw0/clic/internal/cli"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <line>",
	Short: "Complete a command or option name",
	Long: `Prints the line with the name under the cursor expanded. If the name is
ambiguous, the matching candidates follow, one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cursor, _ := cmd.Flags().GetInt("cursor")
		return cli.RunComplete(cmd.Context(), runOptions(cmd), args[0], cursor, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
	completeCmd.Flags().Int("cursor", -1, "Cursor offset in characters (default end of line)")
}

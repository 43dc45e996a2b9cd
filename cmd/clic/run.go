package main

import (
	"github.com/aretw0/clic/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive shell",
	Long: `Starts the read-process loop. On a terminal, tab completes command and
option names and the arrow keys browse the history. Piped input is processed
line by line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd)
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		return cli.RunInteractive(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("watch", "w", false, "Reload the manifest or catalog when it changes")

	// 'run' is the default when no command is provided
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
	rootCmd.RunE = runCmd.RunE
}

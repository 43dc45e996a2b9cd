package main

import (
	"os"

	"github.com/aretw0/clic/internal/cli"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec [line...]",
	Short: "Process lines without the interactive shell",
	Long: `Processes each argument as one input line, in order, and exits with a
non-zero status if any of them failed. Quote each line as a single argument:

  clic exec "hello --name 'Ada Lovelace'" list

Without arguments, lines are read from stdin and echoed before their output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd)
		if len(args) == 0 {
			return cli.RunScript(cmd.Context(), opts, os.Stdin, os.Stdout)
		}
		return cli.RunLines(cmd.Context(), opts, args, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}

package main

import (
	"os"

	"github.com/aretw0/clic/internal/cli"
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the available commands and flows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunLines(cmd.Context(), runOptions(cmd), []string{"list --all"}, os.Stdout)
	},
}

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "List the available flows and their steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunLines(cmd.Context(), runOptions(cmd), []string{"flows"}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd, flowsCmd)
}

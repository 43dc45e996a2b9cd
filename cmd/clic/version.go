package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/clic"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of clic",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clic version %s\n", strings.TrimSpace(clic.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

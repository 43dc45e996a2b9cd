package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/clic/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clic",
	Short: "clic is an interactive command-line interpreter",
	Long: `clic reads lines, splits them with shell-style quoting and runs the registered
commands or flows they name. Commands come from builtins, a manifest or a
markdown catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrDispatchFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("manifest", "m", "", "YAML, TOML or JSON file declaring commands and flows")
	flags.StringP("catalog", "c", "", "Directory of markdown documents declaring commands and flows")
	flags.Bool("debug", false, "Log debug output to stderr")
	flags.Int("history-size", 0, "Number of lines kept in the history (default 50)")
	flags.String("redis-addr", "", "Redis address where processed lines are journaled")
	flags.String("redis-key", "", "Redis list used as journal (default clic:journal)")
	flags.StringSlice("redact", nil, "Option name patterns whose values are masked in the journal (default password, secret, token, api key)")
	flags.String("metrics-addr", "", "Address serving Prometheus metrics, e.g. :2112")
}

// runOptions reads the persistent flags.
func runOptions(cmd *cobra.Command) cli.RunOptions {
	flags := cmd.Flags()
	opts := cli.RunOptions{}
	opts.Manifest, _ = flags.GetString("manifest")
	opts.Catalog, _ = flags.GetString("catalog")
	opts.Debug, _ = flags.GetBool("debug")
	opts.HistorySize, _ = flags.GetInt("history-size")
	opts.RedisAddr, _ = flags.GetString("redis-addr")
	opts.RedisKey, _ = flags.GetString("redis-key")
	opts.Redact, _ = flags.GetStringSlice("redact")
	opts.MetricsAddr, _ = flags.GetString("metrics-addr")
	return opts
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xnacly/sqleibniz/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sqleibniz",
	Short: "sqleibniz static SQL analyzer",
	Long:  `sqleibniz lexes, parses and lints SQL files against the sqlite dialect, without ever executing them`,
}

// main registers subcommands and persistent flags, then executes the
// root command. If command execution returns an error, the process
// exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("budget", "", "TOML file overriding the hook wall-clock/step budget")
	rootCmd.PersistentFlags().String("trace", "", "trace output path ('-' for stderr), enables tracing")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring tracer capacity")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "periodic liveness event interval (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal,
// used to decide whether to color pretty-printed output.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

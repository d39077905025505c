package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xnacly/sqleibniz/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the sqleibniz language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Duration("debounce", 300*time.Millisecond, "delay between an edit and its re-analysis")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{Debounce: debounce})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}

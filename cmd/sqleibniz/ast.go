package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/driver"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] PATHS...",
	Short: "Print the parsed AST of one or more SQL files",
	Long:  `Lex and parse the given files, then dump the resulting AST. Runs no hooks and prints no diagnostics — use "diagnose" for those`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAST,
}

func init() {
	astCmd.Flags().Bool("json", false, "dump the AST as JSON per its MarshalJSON schema instead of an indented tree")
}

func runAST(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	asJSON, _ := cmd.Flags().GetBool("json")

	fs := source.NewFileSet()
	cfg := rules.NewConfig()

	for _, path := range args {
		id, err := fs.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		result := driver.Analyze(fs, id, cfg)

		if len(args) > 1 {
			fmt.Fprintf(os.Stdout, "-- %s\n", result.Path)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result.AST); err != nil {
				return fmt.Errorf("failed to encode AST for %s: %w", result.Path, err)
			}
			continue
		}

		printNodeTree(os.Stdout, result.AST, 0)
	}

	return nil
}

// printNodeTree renders prog as an indented pre-order tree, one line per
// node: its Kind and the text spanned by its anchor token, mirroring the
// teacher's own indented tokenize/parse dump commands.
func printNodeTree(w *os.File, prog *ast.Program, indent int) {
	if prog == nil {
		fmt.Fprintln(w, "<nil program>")
		return
	}
	for _, stmt := range prog.Stmts {
		printNode(w, stmt, indent)
	}
}

func printNode(w *os.File, n ast.Node, depth int) {
	if n == nil {
		fmt.Fprintf(w, "%s<nil>\n", indentStr(depth))
		return
	}
	fmt.Fprintf(w, "%s%s %q\n", indentStr(depth), n.Kind(), n.Anchor().Text)
	for _, child := range n.Children() {
		printNode(w, child, depth+1)
	}
}

func indentStr(depth int) string {
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

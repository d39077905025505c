package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/diagfmt"
	"github.com/xnacly/sqleibniz/internal/driver"
	"github.com/xnacly/sqleibniz/internal/source"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [flags] PATHS...",
	Short: "Analyze SQL files and report diagnostics",
	Long:  `Lex, parse and hook-walk one or more SQL files, reporting a diagnostic for every rule violation found`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringP("config", "c", "leibniz.lua", "configuration file")
	diagnoseCmd.Flags().BoolP("ignore-config", "i", false, "do not load any configuration file")
	diagnoseCmd.Flags().BoolP("silent", "s", false, "suppress rendering; exit code still reflects outcome")
	diagnoseCmd.Flags().StringArrayP("disable", "D", nil, "disable rule by kebab-case name (repeatable)")
	diagnoseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diagnoseCmd.Flags().Bool("with-notes", false, "include diagnostic notes in pretty output")
	diagnoseCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagnoseCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	configPath, _ := cmd.Flags().GetString("config")
	ignoreConfig, _ := cmd.Flags().GetBool("ignore-config")
	silent, _ := cmd.Flags().GetBool("silent")
	disable, _ := cmd.Flags().GetStringArray("disable")
	format, _ := cmd.Flags().GetString("format")
	withNotes, _ := cmd.Flags().GetBool("with-notes")
	fullPath, _ := cmd.Flags().GetBool("fullpath")
	jobs, _ := cmd.Flags().GetInt("jobs")
	budgetPath, err := cmd.Root().PersistentFlags().GetString("budget")
	if err != nil {
		return err
	}

	cfg, warnings, err := loadConfig(configPath, ignoreConfig, budgetPath, disable)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}

	fs := source.NewFileSet()
	results, err := driver.AnalyzeFiles(cmd.Context(), fs, args, cfg, jobs)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var verdicts []diag.Verdict
	fileOrder := make([]source.FileID, 0, len(results))
	exitCode := 0
	for _, r := range results {
		fileOrder = append(fileOrder, r.FileID)
		verdicts = append(verdicts, r.Verdicts...)
		for _, v := range r.Verdicts {
			if !v.Suppressed && v.Severity == diag.SevError {
				exitCode = 1
			}
		}
	}
	diag.SortVerdicts(verdicts)

	if !silent {
		pathMode := diagfmt.PathModeAuto
		if fullPath {
			pathMode = diagfmt.PathModeAbsolute
		}

		switch format {
		case "pretty":
			opts := diagfmt.PrettyOpts{
				Color:     isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "",
				Context:   2,
				PathMode:  pathMode,
				Highlight: true,
				ShowNotes: withNotes,
			}
			diagfmt.Pretty(os.Stdout, verdicts, fs, cfg, fileOrder, opts)
		case "json":
			jsonOpts := diagfmt.JSONOpts{
				IncludePositions:  true,
				PathMode:          pathMode,
				IncludeNotes:      withNotes,
				IncludeSuggestion: true,
			}
			if err := diagfmt.JSON(os.Stdout, verdicts, fs, fileOrder, jsonOpts); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	if exitCode != 0 {
		os.Exit(1)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/driver"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/ui"
	"github.com/xnacly/sqleibniz/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] PATHS...",
	Short: "Re-run diagnose on the given files as they change",
	Long:  `Watches the given SQL files (via fsnotify) and re-analyzes each on write, rendering live progress. Falls back to plain log lines when stdout is not a terminal`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringP("config", "c", "leibniz.lua", "configuration file")
	watchCmd.Flags().BoolP("ignore-config", "i", false, "do not load any configuration file")
	watchCmd.Flags().StringArrayP("disable", "D", nil, "disable rule by kebab-case name (repeatable)")
	watchCmd.Flags().Duration("debounce", 150*time.Millisecond, "delay after a write before re-analyzing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	ignoreConfig, _ := cmd.Flags().GetBool("ignore-config")
	disable, _ := cmd.Flags().GetStringArray("disable")
	debounce, _ := cmd.Flags().GetDuration("debounce")
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

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start filesystem watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(args))
	for _, path := range args {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		watched[abs] = true
	}

	events := make(chan watch.Event, 64)
	sink := watch.ChannelSink{Ch: events}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	interactive := isTerminal(os.Stdout)

	consumerDone := make(chan struct{})
	if interactive {
		model := ui.NewProgressModel("sqleibniz watch", args, events)
		program := tea.NewProgram(model)
		go func() {
			program.Run()
			cancel()
			close(consumerDone)
		}()
	} else {
		go func() {
			for ev := range events {
				logPlainEvent(cmd, ev)
			}
			close(consumerDone)
		}()
	}

	fs := source.NewFileSet()
	for _, path := range args {
		analyzeOnce(fs, path, cfg, sink)
	}

	go runWatchLoop(ctx, watcher, watched, cfg, debounce, sink, fs)

	<-ctx.Done()
	close(events)
	<-consumerDone
	return nil
}

// runWatchLoop drains fsnotify events until ctx is cancelled, debouncing
// bursts of writes to the same file (editors often emit several events
// per save) before triggering re-analysis.
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]bool, cfg *rules.Config, debounce time.Duration, sink watch.Sink, fs *source.FileSet) {
	pending := map[string]*time.Timer{}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watched[ev.Name] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := ev.Name
			if t, exists := pending[path]; exists {
				t.Stop()
			}
			pending[path] = time.AfterFunc(debounce, func() {
				analyzeOnce(fs, path, cfg, sink)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			sink.OnEvent(watch.Event{Status: watch.StatusError, Err: err})
		}
	}
}

// analyzeOnce reloads path into fs and runs the full lex/parse/hook
// pipeline against it, reporting progress through sink at each stage.
func analyzeOnce(fs *source.FileSet, path string, cfg *rules.Config, sink watch.Sink) {
	sink.OnEvent(watch.Event{File: path, Stage: watch.StageLex, Status: watch.StatusWorking})
	start := time.Now()

	id, err := fs.Load(path)
	if err != nil {
		sink.OnEvent(watch.Event{File: path, Status: watch.StatusError, Err: err})
		return
	}

	sink.OnEvent(watch.Event{File: path, Stage: watch.StageParse, Status: watch.StatusWorking})
	result := driver.Analyze(fs, id, cfg)

	errCount := 0
	for _, v := range result.Verdicts {
		if !v.Suppressed && v.Severity == diag.SevError {
			errCount++
		}
	}

	status := watch.StatusDone
	if errCount > 0 {
		status = watch.StatusFlagged
	}
	sink.OnEvent(watch.Event{
		File:      path,
		Stage:     watch.StageHooks,
		Status:    status,
		DiagCount: len(result.Verdicts),
		Elapsed:   time.Since(start),
	})
}

func logPlainEvent(cmd *cobra.Command, ev watch.Event) {
	if ev.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "watch: %s: %v\n", ev.File, ev.Err)
		return
	}
	if ev.File == "" {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d diagnostics, %s)\n", ev.File, ev.Status, ev.DiagCount, ev.Elapsed)
}

// Package watch models progress events for a running `sqleibniz watch`
// session, so the fsnotify-driven re-analysis loop and the bubbletea
// progress UI in internal/ui can communicate over a plain channel
// instead of the UI reaching into the driver directly.
package watch

import "time"

// Stage identifies which step of a single file's analysis an Event
// describes, mirroring the driver's lex -> parse -> hook-walk pipeline
// (spec.md §4.5).
type Stage string

const (
	// StageLex is the tokenization stage.
	StageLex Stage = "lex"
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageHooks is the hook-evaluation stage.
	StageHooks Stage = "hooks"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to be (re)analyzed.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being analyzed.
	StatusWorking Status = "working"
	// StatusDone indicates analysis finished with no unsuppressed
	// diagnostics.
	StatusDone Status = "done"
	// StatusFlagged indicates analysis finished with at least one
	// unsuppressed diagnostic.
	StatusFlagged Status = "flagged"
	// StatusError indicates analysis could not complete (e.g. the file
	// disappeared mid-run).
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall watch session
// when File is empty, e.g. "rescanning after a config reload").
type Event struct {
	File      string
	Stage     Stage
	Status    Status
	DiagCount int
	Err       error
	Elapsed   time.Duration
}

// Sink consumes progress events.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sync/atomic"
	"testing"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewServer(&bytes.Buffer{}, &out, ServerOptions{})
	return s, &out
}

func drainMessages(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(out.Bytes()))
	out.Reset()
	var got []rpcMessage
	for {
		payload, err := readMessage(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("reading message: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("unmarshaling message: %v", err)
		}
		got = append(got, msg)
	}
	return got
}

func drainPublishes(t *testing.T, out *bytes.Buffer) []publishDiagnosticsParams {
	t.Helper()
	var got []publishDiagnosticsParams
	for _, msg := range drainMessages(t, out) {
		if msg.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var params publishDiagnosticsParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			t.Fatalf("unmarshaling publish params: %v", err)
		}
		got = append(got, params)
	}
	return got
}

func TestHandleDidOpenPublishesDiagnostics(t *testing.T) {
	s, out := newTestServer(t)

	openParams, err := json.Marshal(didOpenTextDocumentParams{
		TextDocument: textDocumentItem{
			URI:        "file:///bad.sql",
			LanguageID: "sql",
			Version:    1,
			Text:       "EXPLAIN QUERY PLAN 25;",
		},
	})
	if err != nil {
		t.Fatalf("marshaling params: %v", err)
	}
	if err := s.handleMessage(&rpcMessage{Method: "textDocument/didOpen", Params: openParams}); err != nil {
		t.Fatalf("handleDidOpen: %v", err)
	}

	seq := atomic.LoadUint64(&s.latestSeq)
	s.runDiagnostics(seq)

	published := drainPublishes(t, out)
	if len(published) == 0 {
		t.Fatalf("expected at least one publishDiagnostics notification")
	}
	last := published[len(published)-1]
	if last.URI == "" {
		t.Fatalf("expected a non-empty URI")
	}
	if len(last.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic for malformed SQL")
	}
}

func TestHandleDidCloseClearsDiagnostics(t *testing.T) {
	s, out := newTestServer(t)

	uri := "file:///bad.sql"
	openParams, _ := json.Marshal(didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "EXPLAIN QUERY PLAN 25;"},
	})
	if err := s.handleMessage(&rpcMessage{Method: "textDocument/didOpen", Params: openParams}); err != nil {
		t.Fatalf("handleDidOpen: %v", err)
	}
	s.runDiagnostics(atomic.LoadUint64(&s.latestSeq))
	out.Reset()

	closeParams, _ := json.Marshal(didCloseTextDocumentParams{
		TextDocument: textDocumentIdentifier{URI: uri},
	})
	if err := s.handleMessage(&rpcMessage{Method: "textDocument/didClose", Params: closeParams}); err != nil {
		t.Fatalf("handleDidClose: %v", err)
	}

	published := drainPublishes(t, out)
	if len(published) != 1 {
		t.Fatalf("expected exactly one clearing publish, got %d", len(published))
	}
	if len(published[0].Diagnostics) != 0 {
		t.Fatalf("expected an empty diagnostics list on close, got %+v", published[0].Diagnostics)
	}
}

func TestHandleInitializeAdvertisesDocumentSyncOnly(t *testing.T) {
	s, out := newTestServer(t)
	id := json.RawMessage(`1`)
	if err := s.handleMessage(&rpcMessage{Method: "initialize", ID: id, Params: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("handleInitialize: %v", err)
	}

	msgs := drainMessages(t, out)
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one response, got %d", len(msgs))
	}
	msg := msgs[0]
	var result initializeResult
	if err := json.Unmarshal(msg.Result, &result); err != nil {
		t.Fatalf("unmarshaling result: %v", err)
	}
	if result.Capabilities.TextDocumentSync.Change != syncKindFull {
		t.Fatalf("expected full document sync, got %+v", result.Capabilities.TextDocumentSync)
	}
}

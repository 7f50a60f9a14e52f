// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"
	"testing"
	"time"

	"github.com/warm-ai/warm-tui/internal/api"
)

// =============================================================================
// STREAM BUFFER TESTS
// =============================================================================

func TestStreamBufferEmptyFlush(t *testing.T) {
	sb := NewStreamBuffer()

	if content, ok := sb.Flush(); ok || content != "" {
		t.Errorf("Flush on empty buffer = (%q, %v), want (\"\", false)", content, ok)
	}
	if content, ok := sb.ForceFlush(); ok || content != "" {
		t.Errorf("ForceFlush on empty buffer = (%q, %v), want (\"\", false)", content, ok)
	}
}

func TestStreamBufferBatchThreshold(t *testing.T) {
	sb := NewStreamBuffer()

	// Below the batch size and inside the time window: no flush.
	sb.Write("hello")
	if _, ok := sb.Flush(); ok {
		t.Error("Flush should hold back a single fresh token")
	}
	if sb.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", sb.Pending())
	}

	// Hitting the batch size flushes regardless of time.
	for i := 0; i < defaultBatchSize; i++ {
		sb.Write("x")
	}
	content, ok := sb.Flush()
	if !ok {
		t.Fatal("Flush should fire once the batch size is reached")
	}
	if content != "hello"+"xxxxxxxxxxxxxxx" {
		t.Errorf("Flush content = %q", content)
	}
	if sb.Pending() != 0 {
		t.Errorf("Pending after flush = %d, want 0", sb.Pending())
	}
}

func TestStreamBufferTimeThreshold(t *testing.T) {
	sb := NewStreamBuffer()
	sb.minFlushMs = 5 * time.Millisecond

	sb.Write("slow")
	time.Sleep(10 * time.Millisecond)

	content, ok := sb.Flush()
	if !ok || content != "slow" {
		t.Errorf("Flush after time window = (%q, %v), want (\"slow\", true)", content, ok)
	}
}

func TestStreamBufferForceFlush(t *testing.T) {
	sb := NewStreamBuffer()
	sb.Write("tail")

	content, ok := sb.ForceFlush()
	if !ok || content != "tail" {
		t.Errorf("ForceFlush = (%q, %v), want (\"tail\", true)", content, ok)
	}
	if _, ok := sb.ForceFlush(); ok {
		t.Error("second ForceFlush should report nothing buffered")
	}
}

func TestStreamBufferReset(t *testing.T) {
	sb := NewStreamBuffer()
	sb.Write("discard me")
	sb.Reset()

	if sb.Pending() != 0 {
		t.Errorf("Pending after Reset = %d, want 0", sb.Pending())
	}
	if _, ok := sb.ForceFlush(); ok {
		t.Error("ForceFlush after Reset should find nothing")
	}
}

func TestStreamBufferConcurrentWrites(t *testing.T) {
	sb := NewStreamBuffer()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sb.Write("t")
			}
		}()
	}
	wg.Wait()

	content, ok := sb.ForceFlush()
	if !ok {
		t.Fatal("expected buffered content")
	}
	if len(content) != 1000 {
		t.Errorf("content length = %d, want 1000", len(content))
	}
}

// =============================================================================
// TURN EVENT TESTS
// =============================================================================

func TestTurnEventsCitationReplace(t *testing.T) {
	e := newTurnEvents()

	e.record(api.StreamEvent{
		Type:    api.EventCitation,
		Sources: []api.SourceCitation{{URL: "https://a.example", Title: "A"}},
	})
	e.record(api.StreamEvent{
		Type: api.EventCitation,
		Sources: []api.SourceCitation{
			{URL: "https://b.example", Title: "B"},
			{URL: "https://c.example", Title: "C"},
		},
	})

	snap := e.drain()
	if !snap.HasSources {
		t.Fatal("expected sources in snapshot")
	}
	if len(snap.Sources) != 2 || snap.Sources[0].Title != "B" {
		t.Errorf("later citation event should replace the earlier one, got %+v", snap.Sources)
	}
}

func TestTurnEventsSessionFirstWins(t *testing.T) {
	e := newTurnEvents()

	e.record(api.StreamEvent{Type: api.EventSessionCreated, SessionID: 7, Title: "first"})
	e.record(api.StreamEvent{Type: api.EventSessionCreated, SessionID: 9, Title: "second"})

	snap := e.drain()
	if !snap.HasSession || snap.SessionID != 7 || snap.SessionTitle != "first" {
		t.Errorf("first session_created should win, got %+v", snap)
	}
}

func TestTurnEventsErrorSticky(t *testing.T) {
	e := newTurnEvents()
	e.record(api.StreamEvent{Type: api.EventError, Error: "boom"})

	first := e.drain()
	if !first.HasErr || first.ErrText != "boom" {
		t.Fatalf("first drain = %+v", first)
	}

	// A mid-stream drain must not swallow the error before the turn ends.
	second := e.drain()
	if !second.HasErr || second.ErrText != "boom" {
		t.Errorf("error should survive intermediate drains, got %+v", second)
	}

	e.reset()
	third := e.drain()
	if third.HasErr {
		t.Error("reset should clear the error")
	}
}

func TestTurnEventsDrainClears(t *testing.T) {
	e := newTurnEvents()
	e.record(api.StreamEvent{
		Type:    api.EventCitation,
		Sources: []api.SourceCitation{{URL: "https://a.example"}},
	})
	e.record(api.StreamEvent{Type: api.EventSessionCreated, SessionID: 3})

	e.drain()
	snap := e.drain()
	if snap.HasSources || snap.HasSession {
		t.Errorf("second drain should be empty, got %+v", snap)
	}
}

func TestTurnEventsFileCitations(t *testing.T) {
	e := newTurnEvents()

	payload := `[{"source_title":"report.pdf","text_segment":"Revenue grew 40%"}]`
	e.record(api.StreamEvent{Type: api.EventFileCitation, Content: payload})

	snap := e.drain()
	if !snap.HasFileCitations {
		t.Fatal("expected file citations in snapshot")
	}
	if len(snap.FileCitations) != 1 {
		t.Fatalf("citations = %d, want 1", len(snap.FileCitations))
	}
}

func TestTurnEventsIgnoresTokens(t *testing.T) {
	e := newTurnEvents()
	e.record(api.StreamEvent{Type: api.EventToken, Content: "hi"})

	snap := e.drain()
	if snap.HasSources || snap.HasSession || snap.HasErr || snap.HasFileCitations {
		t.Errorf("token events should be ignored, got %+v", snap)
	}
}

// =============================================================================
// CANCEL MANAGER TESTS
// =============================================================================

func TestCancelManagerReplacesPrevious(t *testing.T) {
	cm := newCancelManager()

	firstCancelled := false
	cm.set(func() { firstCancelled = true })

	secondCancelled := false
	cm.set(func() { secondCancelled = true })

	if !firstCancelled {
		t.Error("setting a new cancel func should cancel the previous turn")
	}
	if secondCancelled {
		t.Error("the new cancel func must not fire on set")
	}

	cm.cancel()
	if !secondCancelled {
		t.Error("cancel should invoke the stored func")
	}

	// Idempotent after clearing.
	cm.cancel()
}

func TestCancelManagerCancelEmpty(t *testing.T) {
	cm := newCancelManager()
	cm.cancel() // must not panic
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader yields its input in fixed-size chunks so tests can prove the
// reader is insensitive to network chunk boundaries.
type chunkReader struct {
	data []byte
	size int
	pos  int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	end := r.pos + r.size
	if end > len(r.data) {
		end = len(r.data)
	}
	n := copy(p, r.data[r.pos:end])
	r.pos += n
	return n, nil
}

func collectEvents(t *testing.T, reader *EventReader) []StreamEvent {
	t.Helper()
	var events []StreamEvent
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, *event)
	}
}

func TestEventReaderLineFraming(t *testing.T) {
	input := `data: {"type": "session_created", "session_id": 42, "title": "Quarterly plan"}
data: {"type": "token", "content": "Hello"}
data: {"type": "token", "content": " world"}
data: {"type": "done"}
data: [DONE]
`
	reader := NewEventReader(strings.NewReader(input), FramingLine)
	events := collectEvents(t, reader)

	require.Len(t, events, 4)
	assert.Equal(t, EventSessionCreated, events[0].Type)
	assert.Equal(t, 42, events[0].SessionID)
	assert.Equal(t, "Quarterly plan", events[0].Title)
	assert.Equal(t, "Hello", events[1].Content)
	assert.Equal(t, " world", events[2].Content)
	assert.Equal(t, EventDone, events[3].Type)
	assert.Equal(t, 0, reader.Dropped())
}

func TestEventReaderEventStreamFraming(t *testing.T) {
	input := "data: {\"type\": \"token\", \"content\": \"The\"}\n\n" +
		"data: {\"type\": \"token\", \"content\": \" report\"}\n\n" +
		"data: {\"type\": \"done\"}\n\n"
	reader := NewEventReader(strings.NewReader(input), FramingEventStream)
	events := collectEvents(t, reader)

	require.Len(t, events, 3)
	assert.Equal(t, "The", events[0].Content)
	assert.Equal(t, " report", events[1].Content)
	assert.Equal(t, EventDone, events[2].Type)
}

func TestEventReaderDropsMalformedRecords(t *testing.T) {
	// A corrupt record in the middle of a stream must not truncate it.
	input := "data: {\"type\": \"token\", \"content\": \"A\"}\n" +
		"data: {not json}\n" +
		"data: {\"type\": \"token\", \"content\": \"B\"}\n" +
		"data: [DONE]\n"
	reader := NewEventReader(strings.NewReader(input), FramingLine)
	events := collectEvents(t, reader)

	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].Content)
	assert.Equal(t, "B", events[1].Content)
	assert.Equal(t, 1, reader.Dropped())
}

func TestEventReaderIgnoresNonDataLines(t *testing.T) {
	input := ": keepalive comment\n" +
		"event: message\n" +
		"data: {\"type\": \"token\", \"content\": \"ok\"}\n\n"
	reader := NewEventReader(strings.NewReader(input), FramingEventStream)
	events := collectEvents(t, reader)

	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].Content)
}

func TestEventReaderChunkBoundaryIndependence(t *testing.T) {
	input := "data: {\"type\": \"token\", \"content\": \"stream me\"}\n" +
		"data: {\"type\": \"citation\", \"sources\": [{\"title\": \"Docs\", \"url\": \"https://example.com\"}]}\n" +
		"data: {\"type\": \"done\"}\n" +
		"data: [DONE]\n"

	for _, size := range []int{1, 2, 3, 7, 64, len(input)} {
		reader := NewEventReader(&chunkReader{data: []byte(input), size: size}, FramingLine)
		events := collectEvents(t, reader)

		require.Len(t, events, 3, "chunk size %d", size)
		assert.Equal(t, "stream me", events[0].Content, "chunk size %d", size)
		require.Len(t, events[1].Sources, 1, "chunk size %d", size)
		assert.Equal(t, "Docs", events[1].Sources[0].Title, "chunk size %d", size)
	}
}

func TestEventReaderCRLFLines(t *testing.T) {
	input := "data: {\"type\": \"token\", \"content\": \"x\"}\r\n\r\ndata: {\"type\": \"done\"}\r\n\r\n"
	reader := NewEventReader(strings.NewReader(input), FramingEventStream)
	events := collectEvents(t, reader)

	require.Len(t, events, 2)
	assert.Equal(t, "x", events[0].Content)
}

func TestEventReaderTruncatedStream(t *testing.T) {
	// Connection lost before done: everything received so far still parses.
	input := "data: {\"type\": \"token\", \"content\": \"partial\"}\n" +
		"data: {\"type\": \"tok"
	reader := NewEventReader(strings.NewReader(input), FramingLine)
	events := collectEvents(t, reader)

	require.Len(t, events, 1)
	assert.Equal(t, "partial", events[0].Content)
	assert.Equal(t, 1, reader.Dropped())
}

func TestEventReaderFlushesTrailingBlock(t *testing.T) {
	// Event-stream framing with no trailing blank line before EOF.
	input := "data: {\"type\": \"done\"}"
	reader := NewEventReader(strings.NewReader(input), FramingEventStream)
	events := collectEvents(t, reader)

	require.Len(t, events, 1)
	assert.Equal(t, EventDone, events[0].Type)
}

func TestProcessStopsAtDone(t *testing.T) {
	input := "data: {\"type\": \"token\", \"content\": \"a\"}\n" +
		"data: {\"type\": \"done\"}\n" +
		"data: {\"type\": \"token\", \"content\": \"ignored\"}\n"
	reader := NewEventReader(strings.NewReader(input), FramingLine)

	var seen []StreamEvent
	err := reader.Process(context.Background(), func(event StreamEvent) {
		seen = append(seen, event)
	})

	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, EventDone, seen[1].Type)
}

func TestProcessHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	input := "data: {\"type\": \"token\", \"content\": \"a\"}\n" +
		"data: {\"type\": \"token\", \"content\": \"b\"}\n"
	reader := NewEventReader(strings.NewReader(input), FramingLine)

	var count int
	err := reader.Process(ctx, func(event StreamEvent) {
		count++
		cancel()
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, count)
}

func TestDecodeFileCitations(t *testing.T) {
	event := StreamEvent{
		Type:    EventFileCitation,
		Content: `[{"source_title": "report.pdf", "text_segment": "Q3 revenue", "start_index": 10, "end_index": 21}]`,
	}
	citations, ok := event.DecodeFileCitations()

	require.True(t, ok)
	require.Len(t, citations, 1)
	assert.Equal(t, "report.pdf", citations[0].SourceTitle)
	require.NotNil(t, citations[0].StartIndex)
	assert.Equal(t, 10, *citations[0].StartIndex)
}

func TestDecodeFileCitationsMalformed(t *testing.T) {
	event := StreamEvent{Type: EventFileCitation, Content: "not json"}
	_, ok := event.DecodeFileCitations()
	assert.False(t, ok)
}

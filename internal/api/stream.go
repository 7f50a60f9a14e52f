// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
)

// =============================================================================
// STREAM FRAMING
// =============================================================================

// Framing selects how event records are delimited on the wire.
//
// The two chat endpoints disagree: the file-search endpoint emits standard
// event-stream records separated by a blank line, while the legacy chat
// endpoint emits one record per line and closes with a literal
// "data: [DONE]". The divergence is part of the backend contract, so both
// paths are kept and selected per endpoint rather than unified here.
type Framing int

const (
	// FramingEventStream delimits records with a blank line.
	FramingEventStream Framing = iota
	// FramingLine delimits records with single newlines and terminates the
	// stream with a literal [DONE] payload.
	FramingLine
)

// dataPrefix is the required record prefix; anything else is discarded.
var dataPrefix = []byte("data:")

// doneSentinel is the legacy endpoint's end-of-stream marker.
var doneSentinel = []byte("[DONE]")

// =============================================================================
// EVENT READER
// =============================================================================

// EventReader decodes a chat event stream into StreamEvents.
//
// Records without a "data: " prefix and records whose JSON payload does not
// parse are dropped without an error: the stream keeps going. Dropped counts
// are tracked for callers that want to inspect them.
type EventReader struct {
	reader  *bufio.Reader
	framing Framing
	dropped int
}

// NewEventReader creates an event reader over a response body.
func NewEventReader(r io.Reader, framing Framing) *EventReader {
	return &EventReader{
		reader:  bufio.NewReader(r),
		framing: framing,
	}
}

// Dropped returns the number of records discarded so far (no prefix or
// malformed JSON).
func (r *EventReader) Dropped() int {
	return r.dropped
}

// Next returns the next decoded event. It returns io.EOF when the byte
// source ends or, under FramingLine, when the [DONE] sentinel arrives.
func (r *EventReader) Next() (*StreamEvent, error) {
	for {
		payload, err := r.nextPayload()
		if err != nil {
			return nil, err
		}
		if bytes.Equal(payload, doneSentinel) {
			return nil, io.EOF
		}

		var event StreamEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			// Malformed payloads are dropped, not surfaced: a partial chunk
			// on one record must not kill the stream.
			r.dropped++
			continue
		}
		return &event, nil
	}
}

// nextPayload returns the raw bytes after the data prefix of the next
// complete record.
func (r *EventReader) nextPayload() ([]byte, error) {
	if r.framing == FramingLine {
		return r.nextLinePayload()
	}
	return r.nextBlockPayload()
}

// nextLinePayload reads single-newline framing: every non-empty line is its
// own record.
func (r *EventReader) nextLinePayload() ([]byte, error) {
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			continue
		}
		payload, ok := stripDataPrefix(line)
		if !ok {
			r.dropped++
			continue
		}
		return payload, nil
	}
}

// nextBlockPayload reads event-stream framing: data lines accumulate until
// a blank line closes the record.
func (r *EventReader) nextBlockPayload() ([]byte, error) {
	var dataLines [][]byte
	for {
		line, err := r.readLine()
		if err != nil {
			if err == io.EOF && len(dataLines) > 0 {
				// Flush a trailing record the server never terminated.
				return bytes.Join(dataLines, []byte("\n")), nil
			}
			return nil, err
		}

		if len(line) == 0 {
			if len(dataLines) == 0 {
				continue
			}
			return bytes.Join(dataLines, []byte("\n")), nil
		}

		if payload, ok := stripDataPrefix(line); ok {
			dataLines = append(dataLines, payload)
		} else {
			r.dropped++
		}
	}
}

// readLine reads one line with the trailing newline and any carriage return
// removed. A final unterminated line is returned before io.EOF.
func (r *EventReader) readLine() ([]byte, error) {
	line, err := r.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return bytes.TrimRight(line, "\r\n"), nil
		}
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// stripDataPrefix returns the payload after "data:" (with optional space),
// or false if the line is not a data record.
func stripDataPrefix(line []byte) ([]byte, bool) {
	if !bytes.HasPrefix(line, dataPrefix) {
		return nil, false
	}
	payload := line[len(dataPrefix):]
	if len(payload) > 0 && payload[0] == ' ' {
		payload = payload[1:]
	}
	return bytes.TrimSpace(payload), true
}

// =============================================================================
// STREAM PROCESSING
// =============================================================================

// EventHandler receives each decoded event, synchronously and in arrival
// order.
type EventHandler func(event StreamEvent)

// Process drains the stream, invoking handler once per event. It returns nil
// when the stream completes (EOF, [DONE], or a done event) and the context's
// error if cancelled mid-stream.
func (r *EventReader) Process(ctx context.Context, handler EventHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		event, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		handler(*event)
		if event.Type == EventDone {
			return nil
		}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithConfig(&ClientConfig{
		BaseURL:    server.URL,
		Timeout:    5 * time.Second,
		SearchRate: 1000,
	})
}

func TestCheckHealth(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		fmt.Fprint(w, `{"status": "healthy"}`)
	}))

	err := client.CheckHealth(context.Background())
	assert.NoError(t, err)
}

func TestCheckHealthBackendDown(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})

	err := client.CheckHealth(context.Background())
	require.Error(t, err)
	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeConnection, clientErr.Type)
}

func TestChatStreamStandardMode(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/message", r.URL.Path)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, ModeStandard, req.Mode)
		assert.Equal(t, "hello", req.Message)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\": \"session_created\", \"session_id\": 7, \"title\": \"hello\"}\n")
		fmt.Fprint(w, "data: {\"type\": \"token\", \"content\": \"Hi \"}\n")
		fmt.Fprint(w, "data: {\"type\": \"token\", \"content\": \"there\"}\n")
		fmt.Fprint(w, "data: {\"type\": \"done\"}\n")
		fmt.Fprint(w, "data: [DONE]\n")
	}))

	var events []StreamEvent
	err := client.ChatStream(context.Background(), ChatRequest{
		Message: "hello",
		Mode:    ModeStandard,
	}, func(event StreamEvent) {
		events = append(events, event)
	})

	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, EventSessionCreated, events[0].Type)
	assert.Equal(t, 7, events[0].SessionID)
	assert.Equal(t, EventDone, events[3].Type)
}

func TestChatStreamFileSearchMode(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/file-search/chat", r.URL.Path)

		var req fileSearchChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 12, req.SessionID)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\": \"token\", \"content\": \"From your document\"}\n\n")
		fmt.Fprint(w, "data: {\"type\": \"done\"}\n\n")
	}))

	var events []StreamEvent
	err := client.ChatStream(context.Background(), ChatRequest{
		ConversationID: 12,
		Message:        "summarize",
		Mode:           ModeFileSearch,
	}, func(event StreamEvent) {
		events = append(events, event)
	})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "From your document", events[0].Content)
}

func TestChatStreamRequestFailed(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"detail": "model overloaded"}`)
	}))

	err := client.ChatStream(context.Background(), ChatRequest{
		Message: "hi",
		Mode:    ModeStandard,
	}, func(StreamEvent) {
		t.Fatal("no events expected on a failed request")
	})

	require.Error(t, err)
	assert.True(t, IsRequestFailed(err))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestChatStreamAborted(t *testing.T) {
	release := make(chan struct{})

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\": \"token\", \"content\": \"partial\"}\n")
		w.(http.Flusher).Flush()
		<-release
	}))
	// Registered after testClient so it runs before server.Close (cleanups are
	// LIFO); otherwise Close waits forever on the handler blocked on release.
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	err := client.ChatStream(ctx, ChatRequest{
		Message: "hi",
		Mode:    ModeStandard,
	}, func(event StreamEvent) {
		cancel()
	})

	require.Error(t, err)
	assert.True(t, IsAborted(err))
}

func TestSearchPeople(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search/people", r.URL.Path)

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "staff engineers in Berlin", req.Query)
		assert.Equal(t, 5, req.NumResults)

		fmt.Fprint(w, `{
			"request_id": "req-123",
			"results": [{
				"card_type": "person",
				"name": "Dana Osei",
				"headline": "Staff Engineer",
				"company": "Acme",
				"location": "Berlin",
				"skills": ["Go", "Distributed systems"]
			}]
		}`)
	}))

	resp, err := client.SearchPeople(context.Background(), "staff engineers in Berlin", 0)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.RequestID)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Dana Osei", resp.Results[0].Name)
	assert.Equal(t, []string{"Go", "Distributed systems"}, resp.Results[0].Skills)
}

func TestSearchNormalizesQuery(t *testing.T) {
	var got string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = req.Query
		fmt.Fprint(w, `{"request_id": "r", "results": []}`)
	}))

	// "é" as e + combining acute must arrive precomposed.
	_, err := client.SearchCompanies(context.Background(), "Café", 3)
	require.NoError(t, err)
	assert.Equal(t, "Café", got)
}

func TestListSessions(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sessions", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("skip"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		fmt.Fprint(w, `[
			{"id": 2, "title": "Newer", "mode": "standard", "created_at": "2025-06-02T10:00:00Z", "updated_at": "2025-06-02T10:05:00Z"},
			{"id": 1, "title": "Older", "mode": "file_search", "file_name": "report.pdf", "created_at": "2025-06-01T09:00:00Z", "updated_at": "2025-06-01T09:30:00Z"}
		]`)
	}))

	sessions, err := client.ListSessions(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Newer", sessions[0].Title)
	assert.Equal(t, "report.pdf", sessions[1].FileName)
}

func TestGetSession(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sessions/5", r.URL.Path)
		fmt.Fprint(w, `{
			"id": 5,
			"title": "Search run",
			"mode": "web_search",
			"created_at": "2025-06-01T09:00:00Z",
			"updated_at": "2025-06-01T09:30:00Z",
			"messages": [
				{"id": 1, "role": "user", "content": "find fintech startups", "created_at": "2025-06-01T09:00:00Z"},
				{"id": 2, "role": "assistant", "content": "Here are some.", "sources": "[{\"title\": \"TechCrunch\", \"url\": \"https://techcrunch.com\"}]", "created_at": "2025-06-01T09:01:00Z"}
			]
		}`)
	}))

	detail, err := client.GetSession(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Search run", detail.Title)
	require.Len(t, detail.Messages, 2)

	sources := detail.Messages[1].DecodeSources()
	require.Len(t, sources, 1)
	assert.Equal(t, "TechCrunch", sources[0].Title)
}

func TestRenameSession(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/sessions/3", r.URL.Path)

		var update SessionUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		assert.Equal(t, "Renamed", update.Title)

		fmt.Fprint(w, `{"id": 3, "title": "Renamed", "mode": "standard", "created_at": "2025-06-01T09:00:00Z", "updated_at": "2025-06-03T12:00:00Z"}`)
	}))

	updated, err := client.RenameSession(context.Background(), 3, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteSessionNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Session not found"}`)
	}))

	err := client.DeleteSession(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsRequestFailed(err))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestUploadFile(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/file-search/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)

		fmt.Fprint(w, `{"session_id": 21, "store_name": "store-21", "file_name": "notes.pdf", "status": "completed"}`)
	}))

	resp, err := client.UploadFile(context.Background(), "notes.pdf", strings.NewReader("%PDF-1.4 test"))
	require.NoError(t, err)
	assert.Equal(t, 21, resp.SessionID)
	assert.Equal(t, "store-21", resp.StoreName)
}

func TestUploadFileRejected(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail": "Unsupported file type: .exe"}`)
	}))

	_, err := client.UploadFile(context.Background(), "virus.exe", strings.NewReader("MZ"))
	require.Error(t, err)
	assert.True(t, IsUploadRejected(err))
	assert.Equal(t, "Unsupported file type: .exe", err.Error())
}

func TestParseCards(t *testing.T) {
	content := `[
		{"card_type": "person", "name": "Ada"},
		{"card_type": "company", "name": "Initech", "industry": "Software"}
	]`
	cards, ok := ParseCards(content)
	require.True(t, ok)
	require.Len(t, cards, 2)
	assert.Equal(t, CardPerson, cards[0].Kind())
	assert.Equal(t, CardCompany, cards[1].Kind())
	assert.Equal(t, "Initech", cards[1].Company.Name)
}

func TestParseCardsRejectsPlainText(t *testing.T) {
	for _, content := range []string{
		"Just a normal assistant reply.",
		"[1, 2, 3]",
		`[{"name": "no discriminator"}]`,
		`{"card_type": "person"}`,
	} {
		_, ok := ParseCards(content)
		assert.False(t, ok, "content %q", content)
	}
}

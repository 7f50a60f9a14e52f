// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history manages the server-backed session directory.
//
// The backend owns all persisted history; this package keeps a refreshable
// in-memory view of it for the sidebar and the resume flow. Nothing here
// writes to disk.
package history

import (
	"context"
	"sort"
	"sync"

	"github.com/warm-ai/warm-tui/internal/api"
	"github.com/warm-ai/warm-tui/internal/model"
)

// DefaultPageSize is how many sessions one refresh or load-more fetches.
const DefaultPageSize = 20

// =============================================================================
// SESSION DIRECTORY
// =============================================================================

// Directory is a cached view of the backend's session list.
//
// All mutations go to the server first; the cache only changes after the
// server acknowledged. Safe for concurrent use.
type Directory struct {
	mu sync.Mutex

	client   *api.Client
	sessions []api.SessionSummary
	pageSize int

	// True once a page came back short, meaning there is nothing left.
	exhausted bool
}

// NewDirectory creates a session directory over a backend client.
func NewDirectory(client *api.Client) *Directory {
	return &Directory{
		client:   client,
		pageSize: DefaultPageSize,
	}
}

// Sessions returns the cached session list, most recently updated first.
func (d *Directory) Sessions() []api.SessionSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]api.SessionSummary, len(d.sessions))
	copy(out, d.sessions)
	return out
}

// Count returns the number of cached sessions.
func (d *Directory) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// =============================================================================
// REFRESH AND PAGING
// =============================================================================

// Refresh replaces the cache with the first page from the server.
func (d *Directory) Refresh(ctx context.Context) ([]api.SessionSummary, error) {
	sessions, err := d.client.ListSessions(ctx, 0, d.pageSize)
	if err != nil {
		return nil, err
	}
	sortByUpdated(sessions)

	d.mu.Lock()
	d.sessions = sessions
	d.exhausted = len(sessions) < d.pageSize
	d.mu.Unlock()

	return d.Sessions(), nil
}

// LoadMore fetches the next page and appends it to the cache. It returns
// how many new sessions arrived.
func (d *Directory) LoadMore(ctx context.Context) (int, error) {
	d.mu.Lock()
	if d.exhausted {
		d.mu.Unlock()
		return 0, nil
	}
	skip := len(d.sessions)
	d.mu.Unlock()

	page, err := d.client.ListSessions(ctx, skip, d.pageSize)
	if err != nil {
		return 0, err
	}

	d.mu.Lock()
	d.sessions = append(d.sessions, page...)
	sortByUpdated(d.sessions)
	d.exhausted = len(page) < d.pageSize
	d.mu.Unlock()

	return len(page), nil
}

// Exhausted reports whether every session is already cached.
func (d *Directory) Exhausted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.exhausted
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// Select fetches a session's full history and rebuilds a conversation
// from it.
func (d *Directory) Select(ctx context.Context, id int) (*model.Conversation, error) {
	detail, err := d.client.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.HydrateFromSession(detail), nil
}

// Rename changes a session title on the server, then in the cache.
func (d *Directory) Rename(ctx context.Context, id int, title string) error {
	updated, err := d.client.RenameSession(ctx, id, title)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.sessions {
		if d.sessions[i].ID == id {
			d.sessions[i] = *updated
			break
		}
	}
	sortByUpdated(d.sessions)
	return nil
}

// Delete removes a session on the server, then from the cache.
func (d *Directory) Delete(ctx context.Context, id int) error {
	if err := d.client.DeleteSession(ctx, id); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.sessions {
		if d.sessions[i].ID == id {
			d.sessions = append(d.sessions[:i], d.sessions[i+1:]...)
			break
		}
	}
	return nil
}

// Touch moves or inserts a session summary after a completed turn, so the
// sidebar reflects the conversation without a full refresh.
func (d *Directory) Touch(summary api.SessionSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.sessions {
		if d.sessions[i].ID == summary.ID {
			d.sessions[i] = summary
			sortByUpdated(d.sessions)
			return
		}
	}
	d.sessions = append([]api.SessionSummary{summary}, d.sessions...)
	sortByUpdated(d.sessions)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sortByUpdated orders sessions most recently updated first.
func sortByUpdated(sessions []api.SessionSummary) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
}

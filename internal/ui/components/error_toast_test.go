// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

func TestToastManagerAddAndExpire(t *testing.T) {
	m := NewToastManager()

	id := m.AddError("upload rejected")
	if id == 0 {
		t.Error("AddError returned zero ID")
	}
	if !m.HasToasts() {
		t.Error("HasToasts() = false after add")
	}

	// Expire it manually
	toasts := m.GetToasts()
	toasts[0].CreatedAt = time.Now().Add(-time.Minute)
	m.Clear()
	m.AddToast(toasts[0])

	if remaining := m.TickToasts(); len(remaining) != 0 {
		t.Errorf("TickToasts() kept %d expired toasts", len(remaining))
	}
}

func TestToastManagerNewestFirst(t *testing.T) {
	m := NewToastManager()
	m.AddStatus("first")
	m.AddStatus("second")

	toasts := m.GetToasts()
	if len(toasts) != 2 {
		t.Fatalf("GetToasts() = %d toasts, want 2", len(toasts))
	}
	if toasts[0].Message != "second" {
		t.Errorf("newest toast = %q, want %q", toasts[0].Message, "second")
	}
}

func TestToastManagerCapsAtMax(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("toast")
	}
	if n := len(m.GetToasts()); n != 5 {
		t.Errorf("manager kept %d toasts, want 5", n)
	}
}

func TestToastManagerRemove(t *testing.T) {
	m := NewToastManager()
	id := m.AddWarning("slow backend")
	m.RemoveToast(id)
	if m.HasToasts() {
		t.Error("HasToasts() = true after remove")
	}
}

func TestRenderToastContainsMessage(t *testing.T) {
	toast := NewErrorToast("backend unreachable")
	got := RenderToast(toast, 100)
	if !strings.Contains(got, "backend unreachable") {
		t.Errorf("RenderToast missing message: %q", got)
	}
	if !strings.Contains(got, "[X]") {
		t.Error("error toast missing error indicator")
	}
}

func TestToastDurationsByKind(t *testing.T) {
	if d := NewErrorToast("e").Duration; d != ErrorToastDuration {
		t.Errorf("error duration = %v", d)
	}
	if d := NewSuccessToast("s").Duration; d != DefaultToastDuration {
		t.Errorf("success duration = %v", d)
	}
	if d := NewWarningToast("w").Duration; d != WarningToastDuration {
		t.Errorf("warning duration = %v", d)
	}
}

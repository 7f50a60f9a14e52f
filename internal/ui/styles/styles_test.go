// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemeWithPreference(t *testing.T) {
	dark := NewThemeWithPreference("dark")
	if !dark.IsDark {
		t.Error("IsDark = false for dark preference")
	}

	light := NewThemeWithPreference("light")
	if light.IsDark {
		t.Error("IsDark = true for light preference")
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	th := NewThemeWithPreference("dark")
	for _, tt := range tests {
		th.SetSize(tt.width, 40)
		if got := th.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestSidebarWidth(t *testing.T) {
	th := NewThemeWithPreference("dark")

	th.SetSize(50, 40)
	if w := th.SidebarWidth(); w != 0 {
		t.Errorf("SidebarWidth() narrow = %d, want 0", w)
	}

	th.SetSize(80, 40)
	if w := th.SidebarWidth(); w != 24 {
		t.Errorf("SidebarWidth() medium = %d, want 24", w)
	}

	th.SetSize(120, 40)
	if w := th.SidebarWidth(); w != 32 {
		t.Errorf("SidebarWidth() wide = %d, want 32", w)
	}
}

func TestRenderProgressBar(t *testing.T) {
	if got := RenderProgressBar(0, 50); got != "" {
		t.Errorf("RenderProgressBar(0, 50) = %q, want empty", got)
	}

	full := RenderProgressBar(10, 100)
	if full != strings.Repeat(ProgressFull, 10) {
		t.Errorf("RenderProgressBar(10, 100) = %q", full)
	}

	empty := RenderProgressBar(10, 0)
	if empty != strings.Repeat(ProgressEmpty, 10) {
		t.Errorf("RenderProgressBar(10, 0) = %q", empty)
	}

	// Out-of-range percentages clamp
	if got := RenderProgressBar(10, 150); got != full {
		t.Errorf("RenderProgressBar(10, 150) = %q, want %q", got, full)
	}
	if got := RenderProgressBar(10, -20); got != empty {
		t.Errorf("RenderProgressBar(10, -20) = %q, want %q", got, empty)
	}
}

func TestSpinnerDuration(t *testing.T) {
	if d := LineSpinner.Duration().Milliseconds(); d != 100 {
		t.Errorf("LineSpinner.Duration() = %dms, want 100ms", d)
	}
}

func TestStatusIndicatorsAreASCII(t *testing.T) {
	for _, s := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	} {
		for _, r := range s {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", s, r)
			}
		}
	}
}

func TestRenderStatusHelpers(t *testing.T) {
	if got := RenderSuccess("uploaded"); !strings.Contains(got, "uploaded") || !strings.Contains(got, StatusIndicators.Success) {
		t.Errorf("RenderSuccess() = %q", got)
	}
	if got := RenderError("backend unreachable"); !strings.Contains(got, StatusIndicators.Error) {
		t.Errorf("RenderError() = %q", got)
	}
}

func TestRenderTreeLine(t *testing.T) {
	if got := RenderTreeLine(false); got != "+- " {
		t.Errorf("RenderTreeLine(false) = %q", got)
	}
	if got := RenderTreeLine(true); got != "`- " {
		t.Errorf("RenderTreeLine(true) = %q", got)
	}
}

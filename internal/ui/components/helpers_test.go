// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

func TestToStr(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{42, "42"},
		{-13, "-13"},
		{1000000, "1000000"},
	}

	for _, tt := range tests {
		if got := toStr(tt.n); got != tt.want {
			t.Errorf("toStr(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}

	for _, tt := range tests {
		if got := fmtNumber(tt.n); got != tt.want {
			t.Errorf("fmtNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(got, "\n") {
		if runeLen(line) > 10 {
			t.Errorf("line %q exceeds width 10", line)
		}
	}

	// Zero width leaves text untouched
	if got := wordWrap("hello world", 0); got != "hello world" {
		t.Errorf("wordWrap(0) = %q", got)
	}

	// Existing newlines are preserved
	got = wordWrap("one\ntwo", 20)
	if got != "one\ntwo" {
		t.Errorf("wordWrap preserved newlines = %q", got)
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := maxLineWidth("ab\nabcd\na"); got != 4 {
		t.Errorf("maxLineWidth = %d, want 4", got)
	}

	// Rune count, not byte count
	if got := maxLineWidth("héllo"); got != 5 {
		t.Errorf("maxLineWidth unicode = %d, want 5", got)
	}
}

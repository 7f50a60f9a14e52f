// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

func TestParseCodeBlocksPassesProseThrough(t *testing.T) {
	got := ParseCodeBlocks("plain sentence, no fences", 80)
	if got != "plain sentence, no fences" {
		t.Errorf("ParseCodeBlocks() = %q, want input unchanged", got)
	}
}

func TestParseCodeBlocksRendersFence(t *testing.T) {
	text := "before\n```go\nfmt.Println(42)\n```\nafter"
	got := ParseCodeBlocks(text, 80)

	for _, want := range []string{"before", "after", "Println", "go"} {
		if !strings.Contains(got, want) {
			t.Errorf("ParseCodeBlocks missing %q", want)
		}
	}
	if strings.Contains(got, "```") {
		t.Error("fence markers should be consumed")
	}
}

func TestParseCodeBlocksUnclosedFence(t *testing.T) {
	// Replies are parsed mid-stream; the closing fence may not have
	// arrived yet.
	got := ParseCodeBlocks("```python\nprint(1)", 80)
	if !strings.Contains(got, "print") {
		t.Error("an unclosed fence should still render its body")
	}
}

func TestParseInlineCode(t *testing.T) {
	got := ParseInlineCode("run `warm status` first")
	if strings.Contains(got, "`") {
		t.Errorf("ParseInlineCode() = %q, backticks should be consumed", got)
	}
	if !strings.Contains(got, "warm status") {
		t.Errorf("ParseInlineCode() = %q, span text should survive", got)
	}
}

func TestParseInlineCodeDanglingBacktick(t *testing.T) {
	got := ParseInlineCode("unbalanced `tail")
	if got != "unbalanced `tail" {
		t.Errorf("ParseInlineCode() = %q, want dangling backtick kept verbatim", got)
	}
}

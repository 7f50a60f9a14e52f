// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the warm TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN CODE RENDERING
// =============================================================================

const codeGutterWidth = 4

// ParseCodeBlocks walks markdown text once: fenced blocks come out
// highlighted in a bordered box, everything else passes through with inline
// `code` spans styled. An unclosed fence still renders; replies are parsed
// mid-stream, so the closing fence often has not arrived yet.
func ParseCodeBlocks(text string, maxWidth int) string {
	var out []string
	var fence []string
	lang := ""
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			if inFence {
				out = append(out, renderFence(lang, strings.Join(fence, "\n"), maxWidth))
				fence = nil
				inFence = false
			} else {
				lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inFence = true
			}
		case inFence:
			fence = append(fence, line)
		default:
			out = append(out, ParseInlineCode(line))
		}
	}

	if inFence && len(fence) > 0 {
		out = append(out, renderFence(lang, strings.Join(fence, "\n"), maxWidth))
	}

	return strings.Join(out, "\n")
}

// renderFence draws one fenced block: language badge, numbered gutter,
// chroma-highlighted body inside a rounded border.
func renderFence(lang, code string, maxWidth int) string {
	code = strings.TrimSpace(code)
	if lang == "" {
		if lexer := lexers.Analyse(code); lexer != nil {
			lang = lexer.Config().Name
		}
	}

	gutter := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(codeGutterWidth).
		Align(lipgloss.Right).
		MarginRight(1)

	var body strings.Builder
	for i, line := range strings.Split(highlight(code, lang), "\n") {
		if i > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(gutter.Render(toStr(i + 1)))
		body.WriteString(line)
	}

	content := body.String()
	if lang != "" {
		badge := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true).
			Render(lang)
		content = badge + "\n" + content
	}

	width := maxWidth - 4
	if width < 20 {
		width = 20
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 2).
		MaxWidth(width).
		Render(content)
}

// RenderInlineCode styles a `code` span against a dim background.
func RenderInlineCode(code string) string {
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.Teal).
		Padding(0, 1).
		Render(code)
}

// ParseInlineCode replaces backtick spans in a prose line. A dangling
// backtick is put back verbatim rather than swallowing the rest of the line.
func ParseInlineCode(text string) string {
	if !strings.ContainsRune(text, '`') {
		return text
	}

	var out strings.Builder
	var span strings.Builder
	inSpan := false

	for _, r := range text {
		switch {
		case r == '`' && inSpan:
			out.WriteString(RenderInlineCode(span.String()))
			span.Reset()
			inSpan = false
		case r == '`':
			inSpan = true
		case inSpan:
			span.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}

	if inSpan {
		out.WriteByte('`')
		out.WriteString(span.String())
	}
	return out.String()
}

// highlight runs code through chroma for 256-color terminal output. Any
// failure falls back to the unstyled source.
func highlight(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	tokens, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, tokens); err != nil {
		return code
	}
	return buf.String()
}

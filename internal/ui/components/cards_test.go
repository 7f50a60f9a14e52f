// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/warm-ai/warm-tui/internal/api"
)

func TestRenderPersonCard(t *testing.T) {
	card := api.PersonCard{
		CardType:    "person",
		Name:        "Ada Lovelace",
		Headline:    "Analytical engine programmer",
		CurrentRole: "Principal Engineer",
		Company:     "Babbage & Co",
		Location:    "London",
		Skills:      []string{"mathematics", "compilers"},
	}

	got := RenderPersonCard(card, 100)

	for _, want := range []string{"Ada Lovelace", "Principal Engineer", "Babbage & Co", "London", "mathematics"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderPersonCard missing %q", want)
		}
	}
}

func TestRenderCompanyCard(t *testing.T) {
	card := api.CompanyCard{
		CardType:           "company",
		Name:               "Acme Robotics",
		Industry:           "Robotics",
		FoundedYear:        2015,
		Location:           "Austin",
		EstimatedEmployees: "51-200",
		Description:        "Builds warehouse automation.",
	}

	got := RenderCompanyCard(card, 100)

	for _, want := range []string{"Acme Robotics", "Robotics", "2015", "Austin", "51-200", "warehouse automation"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderCompanyCard missing %q", want)
		}
	}
}

func TestRenderCardListEmpty(t *testing.T) {
	got := RenderCardList(nil, 100)
	if !strings.Contains(got, "No results") {
		t.Errorf("RenderCardList(nil) = %q, want no-results notice", got)
	}
}

func TestRenderCardListCountHeader(t *testing.T) {
	cards := []api.Card{
		{Person: &api.PersonCard{CardType: "person", Name: "A"}},
		{Person: &api.PersonCard{CardType: "person", Name: "B"}},
	}

	got := RenderCardList(cards, 100)
	if !strings.Contains(got, "2 results") {
		t.Errorf("RenderCardList header missing count: %q", got)
	}

	single := RenderCardList(cards[:1], 100)
	if !strings.Contains(single, "1 result") || strings.Contains(single, "1 results") {
		t.Errorf("RenderCardList singular header wrong: %q", single)
	}
}

func TestRenderCardMalformed(t *testing.T) {
	if got := RenderCard(api.Card{}, 100); got != "" {
		t.Errorf("RenderCard(empty) = %q, want empty", got)
	}
}

func TestRenderSourceCitations(t *testing.T) {
	sources := []api.SourceCitation{
		{Title: "Go blog", URL: "https://go.dev/blog"},
		{URL: "https://example.com"},
	}

	got := RenderSourceCitations(sources, 100)
	if !strings.Contains(got, "Sources") {
		t.Error("missing Sources header")
	}
	if !strings.Contains(got, "[1]") || !strings.Contains(got, "[2]") {
		t.Errorf("missing citation marks: %q", got)
	}
	if !strings.Contains(got, "Go blog") {
		t.Error("missing citation title")
	}
	// Title-less citations fall back to the URL
	if !strings.Contains(got, "https://example.com") {
		t.Error("missing URL fallback")
	}

	if got := RenderSourceCitations(nil, 100); got != "" {
		t.Errorf("RenderSourceCitations(nil) = %q, want empty", got)
	}
}

func TestRenderFileCitations(t *testing.T) {
	citations := []api.FileCitation{
		{SourceTitle: "report.pdf", TextSegment: "Revenue grew 12% in Q3."},
	}

	got := RenderFileCitations(citations, 100)
	if !strings.Contains(got, "report.pdf") {
		t.Error("missing source title")
	}
	if !strings.Contains(got, "Revenue grew") {
		t.Error("missing quoted segment")
	}
}

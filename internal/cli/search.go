// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// search.go - People and company search command handlers for the warm CLI.
//
// Commands: people [query], companies [query]
//
// Examples:
//   warm people "ML engineers in Berlin" -n 3
//   warm companies "Series A devtools startups" --json

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/warm-ai/warm-tui/internal/api"
)

// HandlePeople runs a one-shot people search and prints the results.
func HandlePeople(args *Args) {
	if strings.TrimSpace(args.Query) == "" {
		fmt.Fprintln(os.Stderr, "Usage: warm people \"query\"")
		os.Exit(1)
	}

	cfg := loadConfig()
	client := newClient(cfg, args)
	numResults := args.NumResults
	if numResults == 0 {
		numResults = cfg.Search.NumResults
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	resp, err := client.SearchPeople(ctx, args.Query, numResults)
	if err != nil {
		fail(err)
	}

	if args.JSON {
		printJSON(resp)
		return
	}

	if len(resp.Results) == 0 {
		fmt.Println(mutedStyle.Render("No results found."))
		return
	}
	for i, p := range resp.Results {
		printPerson(i+1, p)
	}
}

// HandleCompanies runs a one-shot company search and prints the results.
func HandleCompanies(args *Args) {
	if strings.TrimSpace(args.Query) == "" {
		fmt.Fprintln(os.Stderr, "Usage: warm companies \"query\"")
		os.Exit(1)
	}

	cfg := loadConfig()
	client := newClient(cfg, args)
	numResults := args.NumResults
	if numResults == 0 {
		numResults = cfg.Search.NumResults
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	resp, err := client.SearchCompanies(ctx, args.Query, numResults)
	if err != nil {
		fail(err)
	}

	if args.JSON {
		printJSON(resp)
		return
	}

	if len(resp.Results) == 0 {
		fmt.Println(mutedStyle.Render("No results found."))
		return
	}
	for i, c := range resp.Results {
		printCompany(i+1, c)
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func printPerson(n int, p api.PersonCard) {
	fmt.Printf("%s %s\n", citationStyle.Render(fmt.Sprintf("%d.", n)), promptStyle.Render(p.Name))
	if p.Headline != "" {
		fmt.Println("   " + infoStyle.Render(p.Headline))
	}
	if p.CurrentRole != "" || p.Company != "" {
		role := p.CurrentRole
		if p.Company != "" {
			if role != "" {
				role += " at "
			}
			role += p.Company
		}
		fmt.Println("   " + role)
	}
	if p.Location != "" {
		fmt.Println("   " + mutedStyle.Render(p.Location))
	}
	if len(p.Skills) > 0 {
		fmt.Println("   " + mutedStyle.Render(strings.Join(p.Skills, ", ")))
	}
	if p.LinkedInURL != "" {
		fmt.Println("   " + mutedStyle.Render(p.LinkedInURL))
	}
	fmt.Println()
}

func printCompany(n int, c api.CompanyCard) {
	fmt.Printf("%s %s\n", citationStyle.Render(fmt.Sprintf("%d.", n)), promptStyle.Render(c.Name))
	if c.Industry != "" {
		fmt.Println("   " + infoStyle.Render(c.Industry))
	}
	if c.Description != "" {
		fmt.Println("   " + c.Description)
	}
	detail := make([]string, 0, 3)
	if c.Location != "" {
		detail = append(detail, c.Location)
	}
	if c.FoundedYear != 0 {
		detail = append(detail, fmt.Sprintf("founded %d", c.FoundedYear))
	}
	if c.EstimatedEmployees != "" {
		detail = append(detail, c.EstimatedEmployees+" employees")
	}
	if len(detail) > 0 {
		fmt.Println("   " + mutedStyle.Render(strings.Join(detail, " | ")))
	}
	if c.WebsiteURL != "" {
		fmt.Println("   " + mutedStyle.Render(c.WebsiteURL))
	}
	fmt.Println()
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail(err)
	}
}

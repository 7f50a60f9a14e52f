// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend health command handler for the warm CLI.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/warm-ai/warm-tui/internal/ui/styles"
)

// HandleStatus checks backend reachability and prints the result.
func HandleStatus(args *Args) {
	cfg := loadConfig()
	client := newClient(cfg, args)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	start := time.Now()
	err := client.CheckHealth(ctx)
	elapsed := time.Since(start).Round(time.Millisecond)

	if args.JSON {
		printJSON(map[string]any{
			"backend":    cfg.Backend.URL,
			"up":         err == nil,
			"latency_ms": elapsed.Milliseconds(),
		})
		if err != nil {
			// JSON consumers still get a non-zero exit on failure.
			fail(err)
		}
		return
	}

	fmt.Println(infoStyle.Render("backend  ") + cfg.Backend.URL)
	if err != nil {
		fmt.Println(styles.RenderError("unreachable: " + err.Error()))
		fail(err)
	}
	fmt.Println(styles.RenderSuccess(fmt.Sprintf("reachable (%s)", elapsed)))
}

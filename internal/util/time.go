// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strconv"
	"time"
)

// RelativeTime formats a timestamp as a short age for list display:
// "now", "5m", "3h", "2d", or the date for anything older than a week.
func RelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "now"
	case age < time.Hour:
		return strconv.Itoa(int(age.Minutes())) + "m"
	case age < 24*time.Hour:
		return strconv.Itoa(int(age.Hours())) + "h"
	case age < 7*24*time.Hour:
		return strconv.Itoa(int(age.Hours()/24)) + "d"
	default:
		return t.Format("Jan 2")
	}
}

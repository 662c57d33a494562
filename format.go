package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// statusf prints a status message to stderr unless quiet mode is set.
func statusf(quiet bool, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// sizeUnits are the supported order-of-magnitude units. Values at or beyond
// the last unit stay in that unit — no further scaling past TB.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// formatSize returns a human-readable size string with at most two decimal
// places, trailing zeros trimmed (e.g. 1310720 -> "1.25 MB", 1024 -> "1 KB").
func formatSize(bytes int64) string {
	value := float64(bytes)

	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	s := strconv.FormatFloat(value, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")

	return s + " " + sizeUnits[unit]
}

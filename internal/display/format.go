// Package display holds the small formatting helpers shared by the report
// writers: byte/KB rendering and path shortening.
package display

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// KB converts a byte count to kilobytes (1 KB = 1024 bytes).
func KB(bytes int64) float64 {
	return float64(bytes) / 1024.0
}

// FormatKB renders a byte count as kilobytes with one decimal, the unit
// every report line uses (e.g. "117.2 KB").
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%.1f KB", KB(bytes))
}

// RelPath returns path relative to base when path lives under base, and
// path unchanged otherwise.
func RelPath(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/assetkit/internal/config"
	"github.com/backmassage/assetkit/internal/display"
)

const topSavingsLimit = 10

// WriteReport renders r as the plain-text summary. Record paths are shown
// relative to base when they live under it.
func WriteReport(w io.Writer, r *Report, base string) error {
	var b strings.Builder

	mode := "DRY-RUN"
	if r.Write {
		mode = "WRITE"
	}
	fmt.Fprintf(&b, "Scanned: %d images in %s\n", len(r.Records), r.Root)
	fmt.Fprintf(&b, "Mode: %s\n", mode)
	fmt.Fprintf(&b, "Imaging engine: %s (available: %s)\n", r.Engine, yesNo(r.Available))
	fmt.Fprintf(&b, "Target max size: %d KB\n", r.MaxKB)
	fmt.Fprintf(&b, "Optimized candidates: %d\n", r.Optimized())
	fmt.Fprintf(&b, "Files written: %d\n", r.Written)
	fmt.Fprintf(&b, "Still over target: %d\n", r.OverTarget)
	fmt.Fprintf(&b, "Total size before: %s\n", display.FormatKB(r.TotalBefore))
	fmt.Fprintf(&b, "Total size after : %s\n", display.FormatKB(r.TotalAfter))
	fmt.Fprintf(&b, "Total saved      : %s\n", display.FormatKB(r.Saved()))
	fmt.Fprintf(&b, "Outcomes: optimized=%d within-target=%d no-reduction=%d unsupported=%d error=%d unavailable=%d\n",
		r.Count(OutcomeOptimized), r.Count(OutcomeWithinTarget), r.Count(OutcomeNoReduction),
		r.Count(OutcomeUnsupported), r.Count(OutcomeError), r.Count(OutcomeUnavailable))

	var lines []string
	for _, rec := range r.TopSavings(topSavingsLimit) {
		if rec.SavedBytes() <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %.1f KB -> %.1f KB (saved %s)",
			display.RelPath(base, rec.Path), rec.KBBefore(), rec.KBAfter(), display.FormatKB(rec.SavedBytes())))
	}
	if len(lines) > 0 {
		b.WriteString("\nTop savings:\n")
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
	}

	switch {
	case !r.Available:
		b.WriteString("\nTip: install ImageMagick to enable optimization:\n")
		b.WriteString("  https://imagemagick.org/script/download.php\n")
		fmt.Fprintf(&b, "  or rerun with --engine %s\n", config.EngineNative)
	case !r.Write:
		b.WriteString("\nDry-run complete. Use --write to apply optimization.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

package catalog

import (
	"fmt"
	"io"
	"strings"
)

// Exit codes shared with the validate-products command.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitFatal   = 2
)

// ExitCode maps a result to the process exit status: warnings alone pass.
func ExitCode(r *Result) int {
	if r.OK() {
		return ExitOK
	}
	return ExitInvalid
}

// WriteReport renders the validation summary for the file at path.
func WriteReport(w io.Writer, path string, r *Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Validated file: %s\n", path)
	fmt.Fprintf(&b, "Products: %d\n", r.Products)
	fmt.Fprintf(&b, "Errors: %d\n", len(r.Errors))
	fmt.Fprintf(&b, "Warnings: %d\n", len(r.Warnings))

	writeSection(&b, "Warnings", r.Warnings)
	writeSection(&b, "Errors", r.Errors)
	if r.OK() {
		b.WriteString("\nValidation passed with no blocking errors.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, title string, findings []Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, f := range findings {
		fmt.Fprintf(b, "- %s\n", f)
	}
}

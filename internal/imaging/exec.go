package imaging

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tools holds the resolved paths of the external helpers. Empty means the
// helper is not installed.
type Tools struct {
	Magick   string // ImageMagick 7 "magick" or legacy "convert".
	Cwebp    string
	Jpegtran string
}

// LookupTools resolves every helper on PATH once at startup.
func LookupTools() Tools {
	var t Tools
	if p, err := exec.LookPath("magick"); err == nil {
		t.Magick = p
	} else if p, err := exec.LookPath("convert"); err == nil {
		t.Magick = p
	}
	if p, err := exec.LookPath("cwebp"); err == nil {
		t.Cwebp = p
	}
	if p, err := exec.LookPath("jpegtran"); err == nil {
		t.Jpegtran = p
	}
	return t
}

// ToolError describes a helper that exited unsuccessfully.
type ToolError struct {
	Tool   string
	Err    error
	Stderr string // Last few lines of stderr, trimmed.
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ToolError) Unwrap() error { return e.Err }

// runTool runs a helper with stdin piped from the given bytes (nil for no
// stdin) and returns its stdout. Stderr is captured for the error message.
func runTool(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ToolError{
			Tool:   filepath.Base(name),
			Err:    err,
			Stderr: tailLines(stderr.String(), 3),
		}
	}
	return stdout.Bytes(), nil
}

// tailLines returns the last n non-empty lines of s joined with "; ".
func tailLines(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}

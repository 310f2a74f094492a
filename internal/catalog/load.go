package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"
)

// ErrFileNotFound is returned by Load when the product file does not exist.
var ErrFileNotFound = errors.New("file not found")

// DecodeError reports input that is not valid UTF-8.
type DecodeError struct {
	Offset int // byte offset of the first invalid sequence
	Byte   byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode as UTF-8: invalid byte 0x%02x at offset %d", e.Byte, e.Offset)
}

// SyntaxError reports malformed, truncated, or trailing JSON.
type SyntaxError struct {
	Line   int // 1-based
	Column int // 1-based, in characters
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Load reads and parses the product file at path.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a single JSON value from data. Objects become
// map[string]any, arrays []any, numbers json.Number.
func Parse(data []byte) (any, error) {
	if !utf8.Valid(data) {
		off := invalidUTF8Offset(data)
		return nil, &DecodeError{Offset: off, Byte: data[off]}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, syntaxError(data, err)
	}

	rest := int(dec.InputOffset())
	for rest < len(data) && isSpace(data[rest]) {
		rest++
	}
	if rest < len(data) {
		line, col := position(data, rest)
		return nil, &SyntaxError{Line: line, Column: col, Msg: "extra data after top-level value"}
	}
	return v, nil
}

func syntaxError(data []byte, err error) error {
	var se *json.SyntaxError
	switch {
	case errors.As(err, &se):
		// Offset counts the offending byte.
		line, col := position(data, max(0, int(se.Offset)-1))
		return &SyntaxError{Line: line, Column: col, Msg: se.Error()}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		line, col := position(data, len(data))
		return &SyntaxError{Line: line, Column: col, Msg: "unexpected end of JSON input"}
	default:
		return &SyntaxError{Line: 1, Column: 1, Msg: err.Error()}
	}
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, off int) (line, col int) {
	off = min(off, len(data))
	prefix := data[:off]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	start := bytes.LastIndexByte(prefix, '\n') + 1
	col = utf8.RuneCount(prefix[start:]) + 1
	return line, col
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

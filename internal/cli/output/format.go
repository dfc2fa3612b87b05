// Package output renders pbctl command results as tables, JSON, or YAML.
//
// Listing commands pair a JSON-serializable payload with a TableRenderer,
// so one payload drives all three formats and --output picks which the
// user sees.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format selects how a command renders its result.
type Format string

const (
	// FormatTable renders a human-readable table. The default.
	FormatTable Format = "table"
	// FormatJSON renders indented JSON, for scripting.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses an --output flag value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Success prints a confirmation line, green when color is on. Only table
// output carries these; JSON and YAML stay machine-clean.
func Success(w io.Writer, color bool, msg string) {
	if color {
		_, _ = fmt.Fprintf(w, "\033[32m%s\033[0m\n", msg)
		return
	}
	_, _ = fmt.Fprintln(w, msg)
}

package output

import (
	"encoding/json"
	"io"
)

// PrintJSON writes the payload as indented JSON. Field names follow the
// API's wire format, so output pipes cleanly into jq against server docs.
func PrintJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

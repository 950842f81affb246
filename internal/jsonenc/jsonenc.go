// Package jsonenc encodes JSON in the layout shared by archive files and
// row exports.
package jsonenc

import (
	"bytes"
	"encoding/json"
)

// Indent is the indentation of every written document.
const Indent = "    "

// Marshal renders v with four-space indentation, non-ASCII and HTML
// characters unescaped, and a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

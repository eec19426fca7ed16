// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeResult prints v as a single JSON line.
func writeResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// writeError prints {"error": ...}.
func writeError(w io.Writer, err error) {
	_ = writeResult(w, map[string]string{"error": err.Error()})
}

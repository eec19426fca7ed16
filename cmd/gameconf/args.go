// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var errNotAnObject = errors.New("argument is not a JSON object")

// argText returns a positional argument as text. Arguments are tried as JSON
// first, so a JSON string is unquoted; anything else is taken verbatim.
func argText(raw string) string {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return s
	}
	return raw
}

// argSchema accepts an inline schema document (JSON or YAML object) or the
// id of a schema in the catalog.
func argSchema(catalog *schema.Catalog, raw string) (*schema.Schema, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		s, err := schema.Parse([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("inline schema: %w", err)
		}
		return s, nil
	}
	return catalog.Get(argText(raw))
}

// argRecord decodes a record argument. Numbers stay exact until an adapter
// formats them.
func argRecord(raw string) (schema.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var rec schema.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec == nil {
		return nil, errNotAnObject
	}
	return rec, nil
}

func xglogFor(cmd *cobra.Command, method string) zerolog.Logger {
	return xglog.WithContext(cmd.Context(), xglog.WithComponent("cli")).With().
		Str(xglog.FieldMethod, method).
		Logger()
}

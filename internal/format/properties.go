// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/metrics"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/rs/zerolog"
)

// maxPropertiesLine bounds a single line of a properties file.
const maxPropertiesLine = 1 << 20

// propertiesAdapter handles flat key=value files such as server.properties.
// Only the first schema section is used and nested fields are plain text.
type propertiesAdapter struct {
	fieldCodec
}

func newPropertiesAdapter(logger zerolog.Logger) *propertiesAdapter {
	return &propertiesAdapter{fieldCodec{format: Properties, logger: logger}}
}

func (a *propertiesAdapter) ID() string { return Properties }

func (a *propertiesAdapter) Decode(path string, s *schema.Schema) (schema.Record, error) {
	if len(s.Sections) == 0 {
		return nil, ErrNoSections
	}
	sec := &s.Sections[0]
	key := sec.SectionKey()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open properties file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rec := schema.Record{}
	values := rec.Ensure(key)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxPropertiesLine)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		raw := sc.Bytes()
		if lineNum == 1 {
			raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
		}
		line := strings.TrimSpace(string(raw))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		name, val, ok := strings.Cut(line, "=")
		if !ok {
			metrics.IncMalformedLine(Properties)
			a.logger.Warn().
				Str(xglog.FieldEvent, "config.malformed_line").
				Str(xglog.FieldPath, path).
				Int(xglog.FieldLine, lineNum).
				Str("content", line).
				Msg("skipping line without '='")
			continue
		}
		name = strings.TrimSpace(name)
		val = strings.TrimSpace(val)

		field := sec.Field(name)
		if field == nil {
			a.logger.Debug().Str(xglog.FieldField, name).Msg("field not in schema, skipped")
			continue
		}
		if field.IsNested() {
			values[name] = val
			continue
		}
		values[name] = a.coerce(key, field, val)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan properties file: %w", err)
	}
	return rec, nil
}

func (a *propertiesAdapter) Encode(path string, rec schema.Record, s *schema.Schema) error {
	if len(s.Sections) == 0 {
		return ErrNoSections
	}
	sec := &s.Sections[0]

	var b strings.Builder
	title := s.Meta.GameName
	if title == "" {
		title = "Server"
	}
	fmt.Fprintf(&b, "# %s Configuration\n", title)
	b.WriteString("# Generated by gameconf\n\n")

	if values, ok := rec[sec.SectionKey()]; ok {
		for i := range sec.Fields {
			f := &sec.Fields[i]
			v, ok := values[f.Name]
			if !ok {
				continue
			}
			if f.Description != "" {
				fmt.Fprintf(&b, "# %s: %s\n", f.Label(), strings.ReplaceAll(f.Description, "\n", " "))
			}
			fmt.Fprintf(&b, "%s=%s\n\n", f.Name, a.text(f, v))
		}
	}

	return writeFile(a.logger, path, func(w io.Writer) error {
		_, err := io.WriteString(w, b.String())
		return err
	})
}

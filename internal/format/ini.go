// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"fmt"
	"io"
	"strings"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/nested"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

// iniOptions keep '#' and ';' inside values: nested fields and free text
// frequently contain them.
var iniOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
	KeyValueDelimiters:  "=",
}

// configObjAdapter handles section based key=value files
// ([ServerSettings] headers, nested fields as "(k=v,...)").
type configObjAdapter struct {
	fieldCodec
}

func newConfigObjAdapter(logger zerolog.Logger) *configObjAdapter {
	return &configObjAdapter{fieldCodec{format: ConfigObj, logger: logger}}
}

func (a *configObjAdapter) ID() string { return ConfigObj }

func (a *configObjAdapter) Decode(path string, s *schema.Schema) (schema.Record, error) {
	file, err := ini.LoadSources(iniOptions, path)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}

	rec := make(schema.Record, len(s.Sections))
	for i := range s.Sections {
		sec := &s.Sections[i]
		key := sec.SectionKey()
		values := rec.Ensure(key)

		iniSec, err := file.GetSection(key)
		if err != nil {
			a.logger.Warn().
				Str(xglog.FieldEvent, "config.section_missing").
				Str(xglog.FieldPath, path).
				Str(xglog.FieldSection, key).
				Msg("section not present in config file")
			continue
		}

		for j := range sec.Fields {
			f := &sec.Fields[j]
			if !iniSec.HasKey(f.Name) {
				a.logger.Debug().
					Str(xglog.FieldSection, key).
					Str(xglog.FieldField, f.Name).
					Msg("field not present in config file")
				continue
			}
			raw := iniSec.Key(f.Name).String()
			if f.IsNested() {
				values[f.Name] = nested.Decode(raw)
				continue
			}
			values[f.Name] = a.coerce(key, f, raw)
		}
	}
	return rec, nil
}

func (a *configObjAdapter) Encode(path string, rec schema.Record, s *schema.Schema) error {
	file := ini.Empty(iniOptions)
	for _, key := range sectionOrder(rec, s) {
		iniSec, err := file.NewSection(key)
		if err != nil {
			return fmt.Errorf("section %q: %w", key, err)
		}
		sec := s.Section(key)
		values := rec[key]
		for _, name := range fieldOrder(values, sec) {
			if _, err := iniSec.NewKey(name, protectQuotes(a.text(lookupField(sec, name), values[name]))); err != nil {
				return fmt.Errorf("field %s.%s: %w", key, name, err)
			}
		}
	}

	return writeFile(a.logger, path, func(w io.Writer) error {
		_, err := file.WriteTo(w)
		return err
	})
}

// protectQuotes wraps a value that is itself enclosed in one kind of quote in
// the other kind. The reader strips one pair of enclosing quotes, so without
// this a value such as "quoted" would come back as quoted.
func protectQuotes(v string) string {
	switch {
	case enclosedIn(v, '"') && !strings.Contains(v, "'"):
		return "'" + v + "'"
	case enclosedIn(v, '\'') && !strings.Contains(v, `"`):
		return `"` + v + `"`
	}
	return v
}

// enclosedIn reports whether v starts and ends with q and has no other q.
func enclosedIn(v string, q byte) bool {
	return len(v) >= 2 && v[0] == q && v[len(v)-1] == q &&
		strings.IndexByte(v[1:], q) == len(v)-2
}

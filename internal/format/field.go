// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"sort"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/metrics"
	"github.com/ManuGH/gameconf/internal/nested"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/ManuGH/gameconf/internal/value"
	"github.com/rs/zerolog"
)

// fieldCodec carries the per-adapter context used when converting single
// field values.
type fieldCodec struct {
	format string
	logger zerolog.Logger
}

// coerce converts a scalar. A failed conversion is logged and the raw value kept.
func (c fieldCodec) coerce(section string, f *schema.Field, raw any) any {
	v, err := value.Coerce(f, raw)
	if err != nil {
		metrics.IncCoercionFallback(c.format)
		c.logger.Warn().Err(err).
			Str(xglog.FieldEvent, "config.coercion_failed").
			Str(xglog.FieldFormat, c.format).
			Str(xglog.FieldSection, section).
			Str(xglog.FieldField, f.Name).
			Msg("type conversion failed, keeping raw value")
	}
	return v
}

// text renders a field value for the line based formats.
func (c fieldCodec) text(f *schema.Field, v any) string {
	if tokens, ok := nested.Tokens(v); ok {
		var hints nested.Hints
		if f != nil {
			hints = f.NestedHints()
		}
		return nested.Encode(tokens, hints)
	}
	return value.FormatField(f, v)
}

// sectionOrder lists the record's sections: schema order first, then sections
// the schema does not know about, sorted.
func sectionOrder(rec schema.Record, s *schema.Schema) []string {
	keys := make([]string, 0, len(rec))
	seen := make(map[string]bool, len(rec))
	for i := range s.Sections {
		key := s.Sections[i].SectionKey()
		if _, ok := rec[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var extra []string
	for key := range rec {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// fieldOrder lists the fields of a record section: schema order first, then
// undeclared fields, sorted.
func fieldOrder(values map[string]any, sec *schema.Section) []string {
	names := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	if sec != nil {
		for _, f := range sec.Fields {
			if _, ok := values[f.Name]; ok && !seen[f.Name] {
				names = append(names, f.Name)
				seen[f.Name] = true
			}
		}
	}
	var extra []string
	for name := range values {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func lookupField(sec *schema.Section, name string) *schema.Field {
	if sec == nil {
		return nil
	}
	return sec.Field(name)
}

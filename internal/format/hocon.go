// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/gurkankaymak/hocon"
	"github.com/rs/zerolog"
)

// hoconAdapter is read-only for HOCON: every section is looked up by its key
// as a config path. Writes fall back to JSON with every section under its
// key, which is valid HOCON and reads back unchanged.
type hoconAdapter struct {
	doc documentCodec
}

func newHOCONAdapter(logger zerolog.Logger) *hoconAdapter {
	return &hoconAdapter{doc: documentCodec{
		fieldCodec: fieldCodec{format: HOCON, logger: logger},
		keyedOnly:  true,
	}}
}

func (a *hoconAdapter) ID() string { return HOCON }

func (a *hoconAdapter) Decode(path string, s *schema.Schema) (schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hocon file: %w", err)
	}

	root := newObject()
	if strings.TrimSpace(string(data)) != "" {
		conf, err := hocon.ParseString(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse hocon file: %w", err)
		}
		for i := range s.Sections {
			key := s.Sections[i].SectionKey()
			if v := conf.Get(key); v != nil {
				root.set(key, fromHOCON(v))
			}
		}
	}
	return a.doc.decode(root, s), nil
}

func (a *hoconAdapter) Encode(path string, rec schema.Record, s *schema.Schema) error {
	a.doc.logger.Debug().Str("path", path).Msg("hocon is read-only, writing json")
	return writeJSONDocument(a.doc.logger, path, a.doc.encode(rec, s))
}

func fromHOCON(v hocon.Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case hocon.Object:
		o := newObject()
		o.unordered = true
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.set(unquoteHOCON(k), fromHOCON(t[k]))
		}
		return o
	case hocon.Array:
		out := make([]any, 0, len(t))
		for _, item := range t {
			out = append(out, fromHOCON(item))
		}
		return out
	case hocon.String:
		return unquoteHOCON(string(t))
	case hocon.Int:
		return int64(t)
	case hocon.Float64:
		return float64(t)
	case hocon.Float32:
		return float64(t)
	case hocon.Boolean:
		return bool(t)
	}
	s := v.String()
	if s == "null" {
		return nil
	}
	return unquoteHOCON(s)
}

// unquoteHOCON strips the quotes some parser versions keep on quoted strings
// and keys.
func unquoteHOCON(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}

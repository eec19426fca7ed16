// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// jsonAdapter reads with gjson and writes with sjson so member order is kept
// in both directions.
type jsonAdapter struct {
	doc documentCodec
}

func newJSONAdapter(logger zerolog.Logger) *jsonAdapter {
	return &jsonAdapter{doc: documentCodec{fieldCodec: fieldCodec{format: JSON, logger: logger}}}
}

func (a *jsonAdapter) ID() string { return JSON }

func (a *jsonAdapter) Decode(path string, s *schema.Schema) (schema.Record, error) {
	root, err := readJSONObject(path)
	if err != nil {
		return nil, err
	}
	return a.doc.decode(root, s), nil
}

func (a *jsonAdapter) Encode(path string, rec schema.Record, s *schema.Schema) error {
	return writeJSONDocument(a.doc.logger, path, a.doc.encode(rec, s))
}

func readJSONObject(path string) (*object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse json file %s: invalid json", path)
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("json file: %w", ErrNotAMapping)
	}
	root, _ := fromJSONResult(result).(*object)
	return root, nil
}

func writeJSONDocument(logger zerolog.Logger, path string, root *object) error {
	data, err := toJSON(root)
	if err != nil {
		return err
	}
	data = pretty.PrettyOptions(data, prettyOptions)

	return writeFile(logger, path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func fromJSONResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		o := newObject()
		r.ForEach(func(key, val gjson.Result) bool {
			o.set(key.String(), fromJSONResult(val))
			return true
		})
		return o
	case r.IsArray():
		out := []any{}
		r.ForEach(func(_, val gjson.Result) bool {
			out = append(out, fromJSONResult(val))
			return true
		})
		return out
	}

	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
		return r.Num
	case gjson.True:
		return true
	case gjson.False:
		return false
	}
	return nil
}

func toJSON(v any) ([]byte, error) {
	switch t := v.(type) {
	case *object:
		doc := []byte("{}")
		for _, k := range t.keys {
			raw, err := toJSON(t.values[k])
			if err != nil {
				return nil, err
			}
			doc, err = sjson.SetRawBytes(doc, jsonPathKey(k), raw)
			if err != nil {
				return nil, fmt.Errorf("set json member %q: %w", k, err)
			}
		}
		return doc, nil
	case []any:
		doc := []byte("[]")
		for _, item := range t {
			raw, err := toJSON(item)
			if err != nil {
				return nil, err
			}
			doc, err = sjson.SetRawBytes(doc, "-1", raw)
			if err != nil {
				return nil, fmt.Errorf("append json element: %w", err)
			}
		}
		return doc, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json value: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// jsonPathKey escapes a member name for use as a single sjson path
// component. All-digit names are forced to object keys.
func jsonPathKey(key string) string {
	var b strings.Builder
	if key != "" && strings.Trim(key, "0123456789") == "" {
		b.WriteByte(':')
	}
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"sort"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/nested"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/ManuGH/gameconf/internal/value"
)

// object is a structured document mapping that remembers key order. Parsers
// that do not report order (TOML, HOCON) produce objects with sorted keys and
// unordered set.
type object struct {
	keys      []string
	values    map[string]any
	unordered bool
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

// set stores v under key and reports whether an earlier value was replaced.
func (o *object) set(key string, v any) bool {
	_, replaced := o.values[key]
	if !replaced {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return replaced
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) len() int {
	return len(o.keys)
}

func (o *object) pairs() []nested.Pair {
	pairs := make([]nested.Pair, 0, len(o.keys))
	for _, k := range o.keys {
		pairs = append(pairs, nested.Pair{Key: k, Value: o.values[k]})
	}
	return pairs
}

// objectFromMap converts decoder output into objects, recursively.
func objectFromMap(m map[string]any) *object {
	o := newObject()
	o.unordered = true
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.set(k, fromNative(m[k]))
	}
	return o
}

func fromNative(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return objectFromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromNative(item)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = item
		}
		return out
	}
	return value.Normalize(v)
}

// toMap converts an object back into plain maps. Nil values are dropped since
// not every format can represent them.
func (o *object) toMap() map[string]any {
	m := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		if v := toPlain(o.values[k]); v != nil {
			m[k] = v
		}
	}
	return m
}

func toPlain(v any) any {
	switch t := v.(type) {
	case *object:
		return t.toMap()
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			if p := toPlain(item); p != nil {
				out = append(out, p)
			}
		}
		return out
	}
	return v
}

// nestedPairs returns the members of a nested field's object. When the parser
// lost the file order, declared sub-fields come first in declaration order.
func nestedPairs(o *object, f *schema.Field) []nested.Pair {
	if !o.unordered {
		return o.pairs()
	}
	pairs := make([]nested.Pair, 0, o.len())
	seen := make(map[string]bool, o.len())
	for _, k := range f.NestedOrder() {
		if v, ok := o.get(k); ok && !seen[k] {
			pairs = append(pairs, nested.Pair{Key: k, Value: v})
			seen[k] = true
		}
	}
	for _, k := range o.keys {
		if !seen[k] {
			pairs = append(pairs, nested.Pair{Key: k, Value: o.values[k]})
		}
	}
	return pairs
}

// documentCodec implements the section mapping shared by the structured
// document formats. With keyedOnly unset, a section without a key lives at
// the document root; with keyedOnly set every section is addressed by its key.
type documentCodec struct {
	fieldCodec
	keyedOnly bool
}

func (c documentCodec) sectionSource(root *object, sec *schema.Section) *object {
	if !sec.HasKey() && !c.keyedOnly {
		return root
	}
	child, _ := root.get(sec.SectionKey())
	src, _ := child.(*object)
	return src
}

// decode extracts the schema's fields from a parsed document.
func (c documentCodec) decode(root *object, s *schema.Schema) schema.Record {
	rec := make(schema.Record, len(s.Sections))
	for i := range s.Sections {
		sec := &s.Sections[i]
		key := sec.SectionKey()
		values := rec.Ensure(key)

		src := c.sectionSource(root, sec)
		if src == nil {
			c.logger.Debug().
				Str(xglog.FieldFormat, c.format).
				Str(xglog.FieldSection, key).
				Msg("section not present in document")
			continue
		}
		for j := range sec.Fields {
			f := &sec.Fields[j]
			raw, ok := src.get(f.Name)
			if !ok {
				continue
			}
			values[f.Name] = c.decodeField(key, f, raw)
		}
	}
	return rec
}

func (c documentCodec) decodeField(section string, f *schema.Field, raw any) any {
	if !f.IsNested() {
		return c.coerce(section, f, toPlain(raw))
	}
	if o, ok := raw.(*object); ok {
		return nested.FromObject(nestedPairs(o, f), f.NestedHints())
	}
	return nested.DecodeValue(raw)
}

// encode builds the document tree for rec. Fields of sections without a key
// are merged into the root; a later section silently replaces an earlier
// root field of the same name, which is only logged.
func (c documentCodec) encode(rec schema.Record, s *schema.Schema) *object {
	root := newObject()
	for _, key := range sectionOrder(rec, s) {
		sec := s.Section(key)
		values := rec[key]

		target := root
		if sec == nil || sec.HasKey() || c.keyedOnly {
			if existing, ok := root.get(key); ok {
				target, _ = existing.(*object)
			}
			if target == root || target == nil {
				target = newObject()
				if root.set(key, target) {
					c.warnCollision(key, key)
				}
			}
		}

		for _, name := range fieldOrder(values, sec) {
			v := c.encodeField(lookupField(sec, name), values[name])
			if target.set(name, v) && target == root {
				c.warnCollision(key, name)
			}
		}
	}
	return root
}

func (c documentCodec) warnCollision(section, key string) {
	c.logger.Warn().
		Str(xglog.FieldEvent, "config.root_key_collision").
		Str(xglog.FieldFormat, c.format).
		Str(xglog.FieldSection, section).
		Str(xglog.FieldField, key).
		Msg("root level key written twice, later value wins")
}

func (c documentCodec) encodeField(f *schema.Field, v any) any {
	if f != nil && f.IsNested() {
		if tokens, ok := nested.Tokens(v); ok {
			o := newObject()
			for _, p := range nested.ToObject(tokens, f.NestedHints()) {
				o.set(p.Key, p.Value)
			}
			return o
		}
	}
	return fromNative(v)
}

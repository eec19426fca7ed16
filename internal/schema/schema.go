// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package schema models the declarative game config schemas: ordered sections
// of typed fields with defaults, plus the Record type produced when a config
// file is decoded against a schema.
package schema

// DefaultSectionKey is used for sections that do not declare a key.
const DefaultSectionKey = "default"

// Field types.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeNested  = "nested"
)

// Schema describes one game config file.
type Schema struct {
	Meta     Meta      `yaml:"meta" json:"meta"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Meta identifies the game and the config file location relative to the server directory.
type Meta struct {
	GameName   string `yaml:"game_name" json:"game_name"`
	ConfigFile string `yaml:"config_file" json:"config_file"`
	// Parser is the preferred format id, used when a caller does not name one.
	Parser string `yaml:"parser,omitempty" json:"parser,omitempty"`
}

// Section is an ordered group of fields. An empty Key means the section has
// no key of its own: it is addressed as "default" and structured documents
// read and write its fields at the document root.
type Section struct {
	Key    string  `yaml:"key,omitempty" json:"key,omitempty"`
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Field is a single config entry.
type Field struct {
	Name         string        `yaml:"name" json:"name"`
	Display      string        `yaml:"display,omitempty" json:"display,omitempty"`
	Type         string        `yaml:"type,omitempty" json:"type,omitempty"`
	Default      any           `yaml:"default,omitempty" json:"default,omitempty"`
	Description  string        `yaml:"description,omitempty" json:"description,omitempty"`
	NestedFields []NestedField `yaml:"nested_fields,omitempty" json:"nested_fields,omitempty"`
}

// NestedField declares one key of a nested field's sub-record.
type NestedField struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

// SectionKey returns the lookup key of the section.
func (s *Section) SectionKey() string {
	if s.Key == "" {
		return DefaultSectionKey
	}
	return s.Key
}

// HasKey reports whether the section declares its own key.
func (s *Section) HasKey() bool {
	return s.Key != ""
}

// Field returns the field with the given name, or nil.
func (s *Section) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// FieldType returns the declared type, defaulting to string.
func (f *Field) FieldType() string {
	if f.Type == "" {
		return TypeString
	}
	return f.Type
}

// IsNested reports whether the field packs a sub-record.
func (f *Field) IsNested() bool {
	return f.FieldType() == TypeNested
}

// HasDefault reports whether the field declares a default value.
func (f *Field) HasDefault() bool {
	return f.Default != nil
}

// Label is the human readable name of the field.
func (f *Field) Label() string {
	if f.Display != "" {
		return f.Display
	}
	return f.Name
}

// NestedHints maps each declared sub-key to its type.
func (f *Field) NestedHints() map[string]string {
	hints := make(map[string]string, len(f.NestedFields))
	for _, nf := range f.NestedFields {
		t := nf.Type
		if t == "" {
			t = TypeString
		}
		hints[nf.Name] = t
	}
	return hints
}

// NestedType returns the declared type of sub-key name, "" when undeclared.
func (f *Field) NestedType(name string) string {
	for _, nf := range f.NestedFields {
		if nf.Name == name {
			if nf.Type == "" {
				return TypeString
			}
			return nf.Type
		}
	}
	return ""
}

// NestedOrder returns the declared sub-keys in declaration order.
func (f *Field) NestedOrder() []string {
	keys := make([]string, 0, len(f.NestedFields))
	for _, nf := range f.NestedFields {
		keys = append(keys, nf.Name)
	}
	return keys
}

// Section returns the section with the given key, or nil.
func (s *Schema) Section(key string) *Section {
	for i := range s.Sections {
		if s.Sections[i].SectionKey() == key {
			return &s.Sections[i]
		}
	}
	return nil
}

// Defaults builds the record written when a config file does not exist yet:
// every declared field with its default, or "" when none is declared.
func (s *Schema) Defaults() Record {
	rec := make(Record, len(s.Sections))
	for _, sec := range s.Sections {
		values := rec.Ensure(sec.SectionKey())
		for _, f := range sec.Fields {
			if f.HasDefault() {
				values[f.Name] = f.Default
			} else {
				values[f.Name] = ""
			}
		}
	}
	return rec
}

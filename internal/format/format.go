// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package format holds one adapter per supported config file format. Every
// adapter decodes only the fields a schema declares and encodes a Record back
// into the format, routing scalar values through package value and nested
// fields through package nested.
package format

import (
	"errors"

	"github.com/ManuGH/gameconf/internal/schema"
)

// Format ids. The historical ids are the names of the parser libraries the
// schema files were first written against; the short names are aliases.
const (
	Properties = "properties"
	ConfigObj  = "configobj"
	YAML       = "ruamel.yaml"
	JSON       = "json"
	TOML       = "toml"
	HOCON      = "pyhocon"
)

var (
	// ErrUnknownFormat is returned for format ids without a registered adapter.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrNoSections is returned when a flat format is used with a schema without sections.
	ErrNoSections = errors.New("schema defines no sections")
	// ErrNotAMapping is returned when a structured document's root is not an object.
	ErrNotAMapping = errors.New("document root is not a mapping")
)

// Adapter decodes and encodes one config file format.
type Adapter interface {
	// ID returns the canonical format id.
	ID() string
	// Decode reads path and returns the schema's fields found in it. Fields
	// missing from the file are missing from the Record.
	Decode(path string, s *schema.Schema) (schema.Record, error)
	// Encode writes rec to path, replacing the file atomically.
	Encode(path string, rec schema.Record, s *schema.Schema) error
}

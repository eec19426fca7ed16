// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schema

import "errors"

var (
	// ErrSchemaNotFound is returned when no schema file exists for an id.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrInvalidSchemaID classifies ids that would escape the schema directory.
	ErrInvalidSchemaID = errors.New("invalid schema id")
	// ErrMissingMeta is returned for schema documents without a meta block.
	ErrMissingMeta = errors.New("schema has no meta block")
)

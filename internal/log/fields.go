// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldSchemaID  = "schema_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldMethod    = "method"

	// Config fields
	FieldFormat  = "format"
	FieldSection = "section"
	FieldField   = "field"
	FieldLine    = "line"

	// Path fields
	FieldPath       = "path"
	FieldServerPath = "server_path"
	FieldDir        = "dir"
)

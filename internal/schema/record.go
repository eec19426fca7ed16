// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schema

// Record holds decoded config values keyed by section key, then field name.
// A field missing from the file is missing from the Record.
type Record map[string]map[string]any

// Ensure returns the values of a section, creating the section if needed.
func (r Record) Ensure(section string) map[string]any {
	values, ok := r[section]
	if !ok || values == nil {
		values = make(map[string]any)
		r[section] = values
	}
	return values
}

// Get returns a field value and whether it is present.
func (r Record) Get(section, field string) (any, bool) {
	values, ok := r[section]
	if !ok {
		return nil, false
	}
	v, ok := values[field]
	return v, ok
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"fmt"
	"sort"
	"strings"

	xglog "github.com/ManuGH/gameconf/internal/log"
)

// Registry maps format ids and their aliases to adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns a registry with every built-in adapter registered.
func NewRegistry() *Registry {
	logger := xglog.WithComponent("format")
	r := &Registry{adapters: make(map[string]Adapter)}

	r.Register(newPropertiesAdapter(logger))
	r.Register(newConfigObjAdapter(logger), "ini")
	r.Register(newYAMLAdapter(logger), "yaml", "yml")
	r.Register(newJSONAdapter(logger))
	r.Register(newTOMLAdapter(logger))
	r.Register(newHOCONAdapter(logger), "hocon", "conf")
	return r
}

// Register adds an adapter under its id and the given aliases.
func (r *Registry) Register(a Adapter, aliases ...string) {
	r.adapters[normalizeID(a.ID())] = a
	for _, alias := range aliases {
		r.adapters[normalizeID(alias)] = a
	}
}

// Lookup returns the adapter for id.
func (r *Registry) Lookup(id string) (Adapter, error) {
	a, ok := r.adapters[normalizeID(id)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownFormat)
	}
	return a, nil
}

// IDs returns every registered id and alias, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/rs/zerolog"
)

var schemaExtensions = []string{".yml", ".yaml"}

// Entry summarises one schema file of a Catalog.
type Entry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ConfigFile string `json:"config_file"`
	Filename   string `json:"filename"`
}

// Catalog is a directory of schema files. It re-reads the directory on every
// call; nothing is cached.
type Catalog struct {
	dir    string
	logger zerolog.Logger
}

// NewCatalog creates a catalog over dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{
		dir:    dir,
		logger: xglog.WithComponent("schema"),
	}
}

// Dir returns the catalog directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns every schema in the directory that carries a meta block.
// Unreadable files are logged and skipped; a missing directory yields no entries.
func (c *Catalog) List() []Entry {
	entries := []Entry{}

	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Error().Err(err).
				Str(xglog.FieldEvent, "schema.list_failed").
				Str(xglog.FieldDir, c.dir).
				Msg("failed to read schema directory")
		}
		return entries
	}

	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		id, ok := trimSchemaExt(name)
		if !ok {
			continue
		}

		doc, err := loadDocument(filepath.Join(c.dir, name))
		if err != nil {
			c.logger.Error().Err(err).
				Str(xglog.FieldEvent, "schema.parse_failed").
				Str(xglog.FieldPath, name).
				Msg("skipping malformed schema file")
			continue
		}
		meta, ok := doc["meta"].(map[string]any)
		if !ok {
			continue
		}

		entry := Entry{ID: id, Name: name, Filename: name}
		if v, ok := meta["game_name"]; ok && v != nil {
			entry.Name = fmt.Sprint(v)
		}
		if v, ok := meta["config_file"]; ok && v != nil {
			entry.ConfigFile = fmt.Sprint(v)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Get loads the schema with the given id.
func (c *Catalog) Get(id string) (*Schema, error) {
	path, err := c.resolve(id)
	if err != nil {
		return nil, err
	}
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	if s.Meta.ConfigFile == "" && s.Meta.GameName == "" {
		return nil, fmt.Errorf("%s: %w", id, ErrMissingMeta)
	}
	return s, nil
}

// Document loads the schema with the given id as a generic document,
// preserving attributes that Schema does not model.
func (c *Catalog) Document(id string) (map[string]any, error) {
	path, err := c.resolve(id)
	if err != nil {
		return nil, err
	}
	return loadDocument(path)
}

func (c *Catalog) resolve(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%q: %w", id, ErrInvalidSchemaID)
	}
	for _, ext := range schemaExtensions {
		path := filepath.Join(c.dir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", id, ErrSchemaNotFound)
}

func trimSchemaExt(name string) (string, bool) {
	for _, ext := range schemaExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}

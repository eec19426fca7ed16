// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"fmt"
	"io"
	"os"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// tomlAdapter decodes into plain maps, so table order is not preserved; the
// encoder writes keys sorted.
type tomlAdapter struct {
	doc documentCodec
}

func newTOMLAdapter(logger zerolog.Logger) *tomlAdapter {
	return &tomlAdapter{doc: documentCodec{fieldCodec: fieldCodec{format: TOML, logger: logger}}}
}

func (a *tomlAdapter) ID() string { return TOML }

func (a *tomlAdapter) Decode(path string, s *schema.Schema) (schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read toml file: %w", err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse toml file: %w", err)
	}
	return a.doc.decode(objectFromMap(doc), s), nil
}

func (a *tomlAdapter) Encode(path string, rec schema.Record, s *schema.Schema) error {
	data, err := toml.Marshal(a.doc.encode(rec, s).toMap())
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}

	return writeFile(a.doc.logger, path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

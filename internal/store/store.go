// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package store reads and writes game server config files described by a
// schema. It is the boundary where adapter errors become empty records and
// failed writes.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ManuGH/gameconf/internal/format"
	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/metrics"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/rs/zerolog"
)

// DefaultFormat is used when neither the caller nor the schema names a format.
const DefaultFormat = format.ConfigObj

var (
	// ErrNotWritable is returned when the config directory denies writes.
	ErrNotWritable = errors.New("config directory is not writable")
	// ErrEmptyWrite is returned when an adapter reported success but left no data.
	ErrEmptyWrite = errors.New("config file missing or empty after write")
	// ErrNoConfigFile is returned for schemas without meta.config_file.
	ErrNoConfigFile = errors.New("schema has no config file")
)

// Store dispatches reads and writes to format adapters. It holds no state
// besides the adapter registry and may be shared.
type Store struct {
	formats *format.Registry
	logger  zerolog.Logger
}

// New creates a Store. A nil registry selects the built-in adapters.
func New(formats *format.Registry) *Store {
	if formats == nil {
		formats = format.NewRegistry()
	}
	return &Store{
		formats: formats,
		logger:  xglog.WithComponent("store"),
	}
}

// Path returns the config file location for s below serverPath.
func (st *Store) Path(serverPath string, s *schema.Schema) (string, error) {
	if s == nil || strings.TrimSpace(s.Meta.ConfigFile) == "" {
		return "", ErrNoConfigFile
	}
	return filepath.Join(serverPath, s.Meta.ConfigFile), nil
}

// FormatFor resolves the format id for a call: formatID when set, then the
// schema's preferred parser, then DefaultFormat.
func FormatFor(s *schema.Schema, formatID string) string {
	if id := strings.TrimSpace(formatID); id != "" {
		return id
	}
	if s != nil && strings.TrimSpace(s.Meta.Parser) != "" {
		return strings.TrimSpace(s.Meta.Parser)
	}
	return DefaultFormat
}

// Read returns the config for s stored below serverPath. Every failure is
// logged and yields an empty record.
func (st *Store) Read(ctx context.Context, serverPath string, s *schema.Schema, formatID string) schema.Record {
	rec, err := st.Load(ctx, serverPath, s, formatID)
	if err != nil {
		return schema.Record{}
	}
	return rec
}

// Load is Read with the error returned. A missing config file is first
// created from the schema defaults.
func (st *Store) Load(ctx context.Context, serverPath string, s *schema.Schema, formatID string) (schema.Record, error) {
	formatID = FormatFor(s, formatID)
	logger := st.callLogger(ctx, serverPath, formatID)

	path, err := st.Path(serverPath, s)
	if err != nil {
		st.failed(logger, "config.read_failed", "read", formatID, err)
		return nil, err
	}
	logger = logger.With().Str(xglog.FieldPath, path).Logger()

	adapter, err := st.formats.Lookup(formatID)
	if err != nil {
		st.failed(logger, "config.read_failed", "read", formatID, err)
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Warn().
			Str(xglog.FieldEvent, "config.defaults_materialize").
			Msg("config file does not exist, creating it from schema defaults")
		err := st.Save(ctx, serverPath, s, s.Defaults(), formatID)
		metrics.RecordDefaultsMaterialized(adapter.ID(), err == nil)
		if err != nil {
			st.failed(logger, "config.defaults_failed", "read", adapter.ID(), err)
			return nil, fmt.Errorf("create default config: %w", err)
		}
		logger.Info().
			Str(xglog.FieldEvent, "config.defaults_created").
			Msg("created default config file")
	}

	rec, err := adapter.Decode(path, s)
	if err != nil {
		st.failed(logger, "config.read_failed", "read", adapter.ID(), err)
		return nil, err
	}
	metrics.RecordOperation("read", adapter.ID(), true)
	logger.Debug().Str(xglog.FieldEvent, "config.read").Int("sections", len(rec)).Msg("config read")
	return rec, nil
}

// Write stores rec as the config for s below serverPath and reports success.
// Failures are logged.
func (st *Store) Write(ctx context.Context, serverPath string, s *schema.Schema, rec schema.Record, formatID string) bool {
	return st.Save(ctx, serverPath, s, rec, formatID) == nil
}

// Save is Write with the error returned.
func (st *Store) Save(ctx context.Context, serverPath string, s *schema.Schema, rec schema.Record, formatID string) error {
	formatID = FormatFor(s, formatID)
	logger := st.callLogger(ctx, serverPath, formatID)

	path, err := st.Path(serverPath, s)
	if err != nil {
		st.failed(logger, "config.write_failed", "write", formatID, err)
		return err
	}
	logger = logger.With().Str(xglog.FieldPath, path).Logger()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = fmt.Errorf("create config directory: %w", err)
		st.failed(logger, "config.write_failed", "write", formatID, err)
		return err
	}
	if err := checkWritable(dir); err != nil {
		err = fmt.Errorf("%s: %w", dir, err)
		st.failed(logger, "config.write_failed", "write", formatID, err)
		return err
	}

	adapter, err := st.formats.Lookup(formatID)
	if err != nil {
		st.failed(logger, "config.write_failed", "write", formatID, err)
		return err
	}

	if err := adapter.Encode(path, rec, s); err != nil {
		st.failed(logger, "config.write_failed", "write", adapter.ID(), err)
		return err
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		st.failed(logger, "config.write_failed", "write", adapter.ID(), ErrEmptyWrite)
		return ErrEmptyWrite
	}

	metrics.RecordOperation("write", adapter.ID(), true)
	logger.Info().
		Str(xglog.FieldEvent, "config.written").
		Int64("bytes", info.Size()).
		Msg("config file saved")
	return nil
}

func (st *Store) callLogger(ctx context.Context, serverPath, formatID string) zerolog.Logger {
	return xglog.WithContext(ctx, st.logger).With().
		Str(xglog.FieldServerPath, serverPath).
		Str(xglog.FieldFormat, formatID).
		Logger()
}

func (st *Store) failed(logger zerolog.Logger, event, op, formatID string, err error) {
	metrics.RecordOperation(op, formatID, false)
	logger.Error().Err(err).Str(xglog.FieldEvent, event).Msg("config " + op + " failed")
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package format

import (
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// writeFile replaces path with whatever write produces. renameio writes to a
// pending file next to path, fsyncs it and renames it into place, so a failed
// encode leaves the previous file untouched.
func writeFile(logger zerolog.Logger, path string, write func(io.Writer) error) error {
	pendingFile, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() {
		// no-op once committed
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("cleanup pending config file")
		}
	}()

	if err := write(pendingFile); err != nil {
		return fmt.Errorf("write config data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}
	return nil
}

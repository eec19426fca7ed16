// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

//go:build unix

package store

import "golang.org/x/sys/unix"

func checkWritable(dir string) error {
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return ErrNotWritable
	}
	return nil
}

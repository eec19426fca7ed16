// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

//go:build !unix

package store

import "os"

func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".gameconf-writable-*")
	if err != nil {
		return ErrNotWritable
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

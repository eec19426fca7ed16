// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestConfine_Relative(t *testing.T) {
	root := realTempDir(t)

	got, err := Confine(root, "servers/mc1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "servers", "mc1"), got)

	got, err = Confine(root, "a/../b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "b"), got)
}

func TestConfine_Rejects(t *testing.T) {
	root := realTempDir(t)

	tests := []struct {
		name   string
		target string
		want   error
	}{
		{"empty", "", ErrInvalidPath},
		{"traversal", "../etc", ErrOutsideRoot},
		{"nested traversal", "a/../../etc", ErrOutsideRoot},
		{"backslash", `a\..\b`, ErrInvalidPath},
		{"absolute outside", "/etc", ErrOutsideRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Confine(root, tt.target)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfine_AbsoluteInside(t *testing.T) {
	root := realTempDir(t)
	target := filepath.Join(root, "srv")

	got, err := Confine(root, target)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestConfine_SymlinkEscape(t *testing.T) {
	root := realTempDir(t)
	outside := realTempDir(t)
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	_, err := Confine(root, "link/server")
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestConfine_MissingRoot(t *testing.T) {
	_, err := Confine(filepath.Join(t.TempDir(), "missing"), "srv")
	assert.Error(t, err)
}

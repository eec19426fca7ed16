// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package fsutil confines caller supplied server paths to an allowed root.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrOutsideRoot is returned when a path resolves outside the allowed root.
	ErrOutsideRoot = errors.New("path escapes allowed root")
	// ErrInvalidPath is returned for empty paths and paths containing backslashes.
	ErrInvalidPath = errors.New("invalid path")
)

// Confine resolves target below root. A relative target is joined to root;
// an absolute one must already lie inside it. Symlinks are resolved before
// the containment check.
func Confine(root, target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if filepath.IsAbs(target) {
		return ConfineAbsPath(root, target)
	}
	return ConfineRelPath(root, target)
}

// ConfineRelPath joins the relative relTarget to root and checks that the
// result stays under root.
func ConfineRelPath(root, relTarget string) (string, error) {
	if strings.Contains(relTarget, "\\") {
		return "", fmt.Errorf("%w: backslash in %q", ErrInvalidPath, relTarget)
	}
	cleanRel := filepath.Clean(relTarget)
	if filepath.IsAbs(cleanRel) {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidPath, relTarget)
	}
	if escapes(cleanRel) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, relTarget)
	}

	realRoot, err := resolveRoot(root)
	if err != nil {
		return "", err
	}
	return checkContained(realRoot, filepath.Join(realRoot, cleanRel))
}

// ConfineAbsPath checks that the absolute targetAbs lies under root.
func ConfineAbsPath(root, targetAbs string) (string, error) {
	if strings.Contains(targetAbs, "\\") {
		return "", fmt.Errorf("%w: backslash in %q", ErrInvalidPath, targetAbs)
	}
	if !filepath.IsAbs(targetAbs) {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, targetAbs)
	}

	realRoot, err := resolveRoot(root)
	if err != nil {
		return "", err
	}
	return checkContained(realRoot, filepath.Clean(targetAbs))
}

func resolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("root %s: %w", root, err)
		}
		return absRoot, nil
	}
	return realRoot, nil
}

// checkContained resolves symlinks along fullPath and verifies the result is
// under realRoot. Server directories may not exist yet, so the deepest
// existing ancestor is resolved and the rest appended.
func checkContained(realRoot, fullPath string) (string, error) {
	existing := fullPath
	var rest []string
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", existing, err)
	}
	realPath := filepath.Join(append([]string{resolved}, rest...)...)

	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutsideRoot, err)
	}
	if escapes(rel) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, realPath)
	}
	return realPath, nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// File: filex.go
// Title: Listfile File Utilities
// Description: File helpers for the formatter: existence checks, reading,
//              atomic in-place writes and listfile discovery in directory
//              trees.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive file utilities
// - 2026-10-18 v0.2.0: Atomic writes and listfile discovery

package filex

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListfileName is the directory listfile name
const ListfileName = "CMakeLists.txt"

// ListfileExt is the extension of included listfiles
const ListfileExt = ".cmake"

// IsDir checks if the path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReadString reads the entire file content as a string
func ReadString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// WriteAtomic replaces path with data. The content goes to a temporary
// file in the same directory first and is renamed over the target, so
// readers see either the old or the new file. An existing file keeps its
// permissions; a new one gets perm.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temporary file for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temporary file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temporary file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// IsListfile reports whether a file name is a listfile by convention
func IsListfile(name string) bool {
	base := filepath.Base(name)
	return base == ListfileName || strings.EqualFold(filepath.Ext(base), ListfileExt)
}

// FindListfiles returns the listfiles below root in lexical order. Hidden
// directories are skipped. A root that is a file is returned as is.
func FindListfiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsListfile(path) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during listfile search: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ExpandPaths replaces every directory in paths by the listfiles below it
// and drops duplicates, keeping first occurrence order. "-" is kept.
func ExpandPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range paths {
		files := []string{p}
		if p != "-" && IsDir(p) {
			var err error
			if files, err = FindListfiles(p); err != nil {
				return nil, err
			}
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// File: doc.go
// Title: Package Documentation for filex
// Description: Package filex provides the file operations of the listfile
//              tools.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Atomic writes and listfile discovery

// Package filex provides the file operations of the listfile tools.
//
// In-place formatting must never leave a half written listfile behind.
// WriteAtomic writes to a temporary file in the target directory and
// renames it over the original, which is atomic on POSIX file systems
// because source and target share a directory.
//
// FindListfiles and ExpandPaths turn command line arguments into the list
// of files to process: CMakeLists.txt and *.cmake below every directory
// argument, in lexical order, skipping hidden directories such as .git.
//
// Usage:
//
//	files, err := filex.ExpandPaths(args)
//	if err != nil {
//		return err
//	}
//	for _, f := range files {
//		...
//		if err := filex.WriteAtomic(f, []byte(out), 0o644); err != nil {
//			return err
//		}
//	}
package filex

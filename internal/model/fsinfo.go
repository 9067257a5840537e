// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which stores file system metadata.
//
// Every Workspace and Solution keeps the path of the file it was loaded from,
// so that configuration errors found later (an unknown solution in a bound,
// a package cache shared by two solutions) can name the offending file.
package model

import "path/filepath"

// FSInfo links a loaded definition back to its source file.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates FSInfo for the given path.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}

// Dir returns the directory containing the source file.
func (f *FSInfo) Dir() string {
	if f == nil || f.FilePath == "" {
		return ""
	}
	return filepath.Dir(f.FilePath)
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx resolves resource paths to file systems.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"cogentcore.org/ladder/base/errors"
)

// ExecutableDir returns the directory containing the running executable,
// with symlinks resolved. It is the well-known base directory for
// resources shipped next to a binary, which unlike the current working
// directory does not depend on where the program was started from.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if rexe, err := filepath.EvalSymlinks(exe); err == nil {
		exe = rexe
	}
	return filepath.Dir(exe), nil
}

// DirFS returns the directory part of given file path as an os.DirFS
// and the filename as a string.  These can then be used to access the file
// using the FS-based interface, consistent with embed and other use-cases.
func DirFS(fpath string) (fs.FS, string, error) {
	fabs, err := filepath.Abs(fpath)
	if err != nil {
		return nil, "", err
	}
	dir, fname := filepath.Split(fabs)
	dfs := os.DirFS(dir)
	return dfs, fname, nil
}

// FileExistsFS reports whether filePath names a regular file in fsys.
// A directory is not a file. Errors other than fs.ErrNotExist
// are returned.
func FileExistsFS(fsys fs.FS, filePath string) (bool, error) {
	if sfs, ok := fsys.(fs.StatFS); ok {
		info, err := sfs.Stat(filePath)
		if err == nil {
			return !info.IsDir(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	fp, err := fsys.Open(filePath)
	if err == nil {
		info, err := fp.Stat()
		fp.Close()
		if err != nil {
			return false, err
		}
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ResolveFS returns a file system and a path within it for the given
// file path. Absolute paths are opened from their own directory.
// Relative paths are resolved in fsys when it is non-nil, and otherwise
// relative to dir, which defaults to [ExecutableDir] when empty.
func ResolveFS(fsys fs.FS, dir, fpath string) (fs.FS, string, error) {
	if filepath.IsAbs(fpath) {
		return DirFS(fpath)
	}
	if fsys != nil {
		return fsys, filepath.ToSlash(filepath.Clean(fpath)), nil
	}
	if dir == "" {
		d, err := ExecutableDir()
		if err != nil {
			return nil, "", err
		}
		dir = d
	}
	return DirFS(filepath.Join(dir, fpath))
}

// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package xdg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// DataFile returns the path within the user-specific data directory for
// the file with the given relative name. The name is joined lexically
// and is not checked for parent directory components, so a name
// containing ".." can refer outside the directory. No part of the path
// is created and the file need not exist; use
// [BaseDirectories.PlaceDataFile] to prepare the path for writing.
func (b *BaseDirectories) DataFile(name string) string {
	return filepath.Join(b.dataHome, b.userPrefix, name)
}

// ConfigFile is like [BaseDirectories.DataFile], for the user-specific
// configuration directory.
func (b *BaseDirectories) ConfigFile(name string) string {
	return filepath.Join(b.configHome, b.userPrefix, name)
}

// CacheFile is like [BaseDirectories.DataFile], for the user-specific
// cache directory.
func (b *BaseDirectories) CacheFile(name string) string {
	return filepath.Join(b.cacheHome, b.userPrefix, name)
}

// StateFile is like [BaseDirectories.DataFile], for the user-specific
// state directory.
func (b *BaseDirectories) StateFile(name string) string {
	return filepath.Join(b.stateHome, b.userPrefix, name)
}

// FindDataFile returns the path of the highest precedence readable data
// file with the given relative name, searching the user-specific data
// directory and then each system data directory in order. If no directory
// holds such a file, FindDataFile returns an error satisfying
// errors.Is(err, fs.ErrNotExist). An error probing a candidate, other
// than the candidate or a parent not existing, is returned immediately.
func (b *BaseDirectories) FindDataFile(name string) (string, error) {
	return b.find(b.dataHome, b.dataDirs, name)
}

// FindConfigFile is like [BaseDirectories.FindDataFile], for
// configuration files.
func (b *BaseDirectories) FindConfigFile(name string) (string, error) {
	return b.find(b.configHome, b.configDirs, name)
}

// FindCacheFile is like [BaseDirectories.FindDataFile], for cache files.
// Cache files have no system directories, so only the user-specific cache
// directory is searched.
func (b *BaseDirectories) FindCacheFile(name string) (string, error) {
	return b.find(b.cacheHome, nil, name)
}

// FindStateFile is like [BaseDirectories.FindDataFile], for state files.
// State files have no system directories, so only the user-specific state
// directory is searched.
func (b *BaseDirectories) FindStateFile(name string) (string, error) {
	return b.find(b.stateHome, nil, name)
}

// FindDataFiles returns the paths of all readable data files with the
// given relative name, in ascending precedence order; the user-specific
// file, when present, is last. Directories holding no such file
// contribute nothing. The result is empty only when no file was found.
func (b *BaseDirectories) FindDataFiles(name string) ([]string, error) {
	return b.findAll(b.dataHome, b.dataDirs, name)
}

// FindConfigFiles is like [BaseDirectories.FindDataFiles], for
// configuration files.
func (b *BaseDirectories) FindConfigFiles(name string) ([]string, error) {
	return b.findAll(b.configHome, b.configDirs, name)
}

// PlaceDataFile returns the path within the user-specific data directory
// for the file with the given relative name, creating any missing
// directories leading to it. The name is joined as for
// [BaseDirectories.DataFile], without checks for parent directory
// components that leave the directory. Created directories are readable
// only by the user. The file itself is not created. PlaceDataFile may be
// called for a path that is already fully prepared.
func (b *BaseDirectories) PlaceDataFile(name string) (string, error) {
	return b.place(b.dataHome, name)
}

// PlaceConfigFile is like [BaseDirectories.PlaceDataFile], for the
// user-specific configuration directory.
func (b *BaseDirectories) PlaceConfigFile(name string) (string, error) {
	return b.place(b.configHome, name)
}

// PlaceCacheFile is like [BaseDirectories.PlaceDataFile], for the
// user-specific cache directory.
func (b *BaseDirectories) PlaceCacheFile(name string) (string, error) {
	return b.place(b.cacheHome, name)
}

// PlaceStateFile is like [BaseDirectories.PlaceDataFile], for the
// user-specific state directory.
func (b *BaseDirectories) PlaceStateFile(name string) (string, error) {
	return b.place(b.stateHome, name)
}

// CreateDataDirectory creates the directory with the given relative name
// within the user-specific data directory, along with any missing
// parents, and returns its path. Created directories are readable only by
// the user. It is not an error for the directory to already exist.
func (b *BaseDirectories) CreateDataDirectory(name string) (string, error) {
	return b.createDirectory(b.dataHome, name)
}

// CreateConfigDirectory is like [BaseDirectories.CreateDataDirectory],
// for the user-specific configuration directory.
func (b *BaseDirectories) CreateConfigDirectory(name string) (string, error) {
	return b.createDirectory(b.configHome, name)
}

// CreateCacheDirectory is like [BaseDirectories.CreateDataDirectory],
// for the user-specific cache directory.
func (b *BaseDirectories) CreateCacheDirectory(name string) (string, error) {
	return b.createDirectory(b.cacheHome, name)
}

// CreateStateDirectory is like [BaseDirectories.CreateDataDirectory],
// for the user-specific state directory.
func (b *BaseDirectories) CreateStateDirectory(name string) (string, error) {
	return b.createDirectory(b.stateHome, name)
}

// ListDataFiles returns the names of the entries of the subdirectory with
// the given relative name within each data directory, without duplicates.
// An entry in a higher precedence directory hides entries with the same
// name in lower precedence directories; names are returned in order of
// the precedence of the directory they were first seen in. Directories
// that do not exist contribute nothing.
func (b *BaseDirectories) ListDataFiles(subdir string) ([]string, error) {
	return b.list(b.dataHome, b.dataDirs, subdir)
}

// ListConfigFiles is like [BaseDirectories.ListDataFiles], for
// configuration directories.
func (b *BaseDirectories) ListConfigFiles(subdir string) ([]string, error) {
	return b.list(b.configHome, b.configDirs, subdir)
}

// ListCacheFiles is like [BaseDirectories.ListDataFiles], for the
// user-specific cache directory.
func (b *BaseDirectories) ListCacheFiles(subdir string) ([]string, error) {
	return b.list(b.cacheHome, nil, subdir)
}

// ListStateFiles is like [BaseDirectories.ListDataFiles], for the
// user-specific state directory.
func (b *BaseDirectories) ListStateFiles(subdir string) ([]string, error) {
	return b.list(b.stateHome, nil, subdir)
}

// find returns the path of the first match for name, probing home and
// then each member of dirs.
func (b *BaseDirectories) find(home string, dirs []string, name string) (string, error) {
	path := filepath.Join(home, b.userPrefix, name)
	ok, err := isReadableFile(path)
	if err != nil {
		return "", err
	}
	if ok {
		return path, nil
	}
	for _, dir := range dirs {
		path = filepath.Join(dir, b.sharedPrefix, name)
		ok, err = isReadableFile(path)
		if err != nil {
			return "", err
		}
		if ok {
			return path, nil
		}
	}
	return "", syscall.ENOENT
}

// findAll returns the paths of all matches for name in ascending
// precedence order, probing the members of dirs in reverse and then home.
func (b *BaseDirectories) findAll(home string, dirs []string, name string) ([]string, error) {
	var found []string
	for i := len(dirs) - 1; i >= 0; i-- {
		path := filepath.Join(dirs[i], b.sharedPrefix, name)
		ok, err := isReadableFile(path)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, path)
		}
	}
	path := filepath.Join(home, b.userPrefix, name)
	ok, err := isReadableFile(path)
	if err != nil {
		return nil, err
	}
	if ok {
		found = append(found, path)
	}
	return found, nil
}

// isReadableFile reports whether path is a regular file that the
// effective user may read. Non-existence of the path or of a parent is
// reported as a false result rather than an error.
func isReadableFile(path string) (bool, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !fi.Mode().IsRegular() {
		return false, nil
	}
	// Effective rather than real user semantics, unlike access(2).
	err = unix.Faccessat(unix.AT_FDCWD, path, unix.R_OK, unix.AT_EACCESS)
	return err == nil, nil
}

// place creates the directories leading to name below home and returns
// the target path without creating the file.
func (b *BaseDirectories) place(home, name string) (string, error) {
	err := os.MkdirAll(filepath.Join(home, b.userPrefix, filepath.Dir(name)), 0o700)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, b.userPrefix, name), nil
}

// createDirectory creates the directory at name below home and returns
// its path.
func (b *BaseDirectories) createDirectory(home, name string) (string, error) {
	path := filepath.Join(home, b.userPrefix, name)
	err := os.MkdirAll(path, 0o700)
	if err != nil {
		return "", err
	}
	return path, nil
}

// list returns the deduplicated names of the entries of subdir below home
// and then below each member of dirs.
func (b *BaseDirectories) list(home string, dirs []string, subdir string) ([]string, error) {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	collect := func(dir string) error {
		ents, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, e := range ents {
			if seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true
			names = append(names, e.Name())
		}
		return nil
	}
	err := collect(filepath.Join(home, b.userPrefix, subdir))
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		err = collect(filepath.Join(dir, b.sharedPrefix, subdir))
		if err != nil {
			return nil, err
		}
	}
	return names, nil
}

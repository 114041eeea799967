// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package xdg

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrNoRuntimeDir is the error returned by runtime directory operations
// when XDG_RUNTIME_DIR was not set, was empty, or held a relative path at
// construction.
var ErrNoRuntimeDir = errors.New("no runtime directory")

// RuntimeDirError is the error returned by runtime directory operations
// when the directory named by XDG_RUNTIME_DIR exists but does not meet
// the specification's security requirements, either because it is not
// owned by the user or because it is accessible to others.
type RuntimeDirError struct {
	Dir   string      // Directory named by XDG_RUNTIME_DIR.
	Owner int         // UID owning the directory.
	UID   int         // Effective UID of the process.
	Perm  fs.FileMode // Permission bits of the directory.
}

func (e *RuntimeDirError) Error() string {
	if e.Owner != e.UID {
		return fmt.Sprintf("runtime directory %s owned by uid %d, not uid %d", e.Dir, e.Owner, e.UID)
	}
	return fmt.Sprintf("runtime directory %s has insecure permissions %#o", e.Dir, e.Perm)
}

// RuntimeDir returns the user's runtime directory, with the value's
// prefix and profile applied. The specification requires the directory be
// owned by the user and accessible to nobody else, and allows it to be
// removed when the login session ends, so the directory named by
// XDG_RUNTIME_DIR is validated on every call: it must exist, be a
// directory, be owned by the effective user and have no group or other
// permissions.
//
// If XDG_RUNTIME_DIR was not usable at construction, the error is
// [ErrNoRuntimeDir]. If the directory fails ownership or permission
// validation, the error is a [*RuntimeDirError]. If the directory does
// not exist, the error satisfies errors.Is(err, fs.ErrNotExist).
func (b *BaseDirectories) RuntimeDir() (string, error) {
	dir, err := b.runtimeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, b.userPrefix), nil
}

// HasRuntimeDir reports whether a valid runtime directory is available.
func (b *BaseDirectories) HasRuntimeDir() bool {
	_, err := b.runtimeDirectory()
	return err == nil
}

// runtimeDirectory returns the base runtime directory after validating
// it.
func (b *BaseDirectories) runtimeDirectory() (string, error) {
	if b.runtimeDir == "" {
		return "", ErrNoRuntimeDir
	}
	var st unix.Stat_t
	err := unix.Stat(b.runtimeDir, &st)
	if err != nil {
		return "", &fs.PathError{Op: "stat", Path: b.runtimeDir, Err: err}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return "", &fs.PathError{Op: "stat", Path: b.runtimeDir, Err: syscall.ENOTDIR}
	}
	euid := unix.Geteuid()
	if int(st.Uid) != euid || st.Mode&0o077 != 0 {
		return "", &RuntimeDirError{
			Dir:   b.runtimeDir,
			Owner: int(st.Uid),
			UID:   euid,
			Perm:  fs.FileMode(st.Mode & 0o777),
		}
	}
	return b.runtimeDir, nil
}

// RuntimeFile returns the path within the runtime directory for the file
// with the given relative name. The runtime directory is validated as for
// [BaseDirectories.RuntimeDir], but no part of the path below it is
// created; use [BaseDirectories.PlaceRuntimeFile] to prepare the path for
// writing.
func (b *BaseDirectories) RuntimeFile(name string) (string, error) {
	dir, err := b.runtimeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, b.userPrefix, name), nil
}

// FindRuntimeFile is like [BaseDirectories.FindDataFile], for the runtime
// directory. The runtime directory is validated as for
// [BaseDirectories.RuntimeDir] before it is searched.
func (b *BaseDirectories) FindRuntimeFile(name string) (string, error) {
	dir, err := b.runtimeDirectory()
	if err != nil {
		return "", err
	}
	return b.find(dir, nil, name)
}

// PlaceRuntimeFile is like [BaseDirectories.PlaceDataFile], for the
// runtime directory. The runtime directory is validated as for
// [BaseDirectories.RuntimeDir] before any directory is created.
func (b *BaseDirectories) PlaceRuntimeFile(name string) (string, error) {
	dir, err := b.runtimeDirectory()
	if err != nil {
		return "", err
	}
	return b.place(dir, name)
}

// CreateRuntimeDirectory is like [BaseDirectories.CreateDataDirectory],
// for the runtime directory. The runtime directory is validated as for
// [BaseDirectories.RuntimeDir] before any directory is created.
func (b *BaseDirectories) CreateRuntimeDirectory(name string) (string, error) {
	dir, err := b.runtimeDirectory()
	if err != nil {
		return "", err
	}
	return b.createDirectory(dir, name)
}

// ListRuntimeFiles is like [BaseDirectories.ListDataFiles], for the
// runtime directory. The runtime directory is validated as for
// [BaseDirectories.RuntimeDir] before it is read.
func (b *BaseDirectories) ListRuntimeFiles(subdir string) ([]string, error) {
	dir, err := b.runtimeDirectory()
	if err != nil {
		return nil, err
	}
	return b.list(dir, nil, subdir)
}

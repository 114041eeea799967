// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

// Package xdg provides access to the file system locations defined by the
// X Desktop Group Base Directory Specification, available at
// https://specifications.freedesktop.org/basedir-spec/basedir-spec-0.8.html.
//
// The specification defines five categories of file:
//
//   - data files, which persist between program runs;
//   - configuration files;
//   - state files, which persist but do not warrant backing up;
//   - cache files, which may be deleted at any time; and
//   - runtime files, which exist for the duration of a login session.
//
// A [BaseDirectories] value is constructed from the process environment by
// [New], [NewWithPrefix] or [NewWithProfile], and provides operations to
// join paths within each category's directories, to search the directories
// in precedence order, and to prepare directories for writing new files.
// Construction reads the environment once; the returned value is not
// affected by later environment changes.
package xdg

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"slices"
)

// https://specifications.freedesktop.org/basedir-spec/basedir-spec-0.8.html
const (
	_HOME = "HOME"

	// $XDG_DATA_HOME or $HOME/.local/share
	key_XDG_DATA_HOME = "XDG_DATA_HOME"
	def_XDG_DATA_HOME = ".local/share"

	// $XDG_DATA_DIRS or /usr/local/share/:/usr/share/
	key_XDG_DATA_DIRS = "XDG_DATA_DIRS"
	def_XDG_DATA_DIRS = "/usr/local/share/:/usr/share/"

	// $XDG_CONFIG_HOME or $HOME/.config
	key_XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	def_XDG_CONFIG_HOME = ".config"

	// $XDG_CONFIG_DIRS or /etc/xdg
	key_XDG_CONFIG_DIRS = "XDG_CONFIG_DIRS"
	def_XDG_CONFIG_DIRS = "/etc/xdg"

	// $XDG_STATE_HOME or $HOME/.local/state
	key_XDG_STATE_HOME = "XDG_STATE_HOME"
	def_XDG_STATE_HOME = ".local/state"

	// $XDG_CACHE_HOME or $HOME/.cache
	key_XDG_CACHE_HOME = "XDG_CACHE_HOME"
	def_XDG_CACHE_HOME = ".cache"

	// $XDG_RUNTIME_DIR
	// Fail rather than construct a default.
	key_XDG_RUNTIME_DIR = "XDG_RUNTIME_DIR"
	def_XDG_RUNTIME_DIR = ""
)

// ErrHomeNotFound is the error returned by [New], [NewWithPrefix] and
// [NewWithProfile] when the user's home directory cannot be determined.
var ErrHomeNotFound = errors.New("home directory not found")

// BaseDirectories holds the base directories of an XDG environment,
// resolved once at construction. The zero value is not usable; use [New],
// [NewWithPrefix] or [NewWithProfile].
//
// Methods that search do so in precedence order: the user-specific
// directory for the category first, then each member of the category's
// system directory list, earlier members taking precedence over later.
// Methods that write only ever write within the user-specific directories.
type BaseDirectories struct {
	home string

	dataHome   string
	configHome string
	cacheHome  string
	stateHome  string
	runtimeDir string // Empty when XDG_RUNTIME_DIR is unusable.

	dataDirs   []string
	configDirs []string

	// userPrefix is prepended to paths within user-specific
	// directories, and sharedPrefix within system directories.
	// userPrefix includes the profile when one is in use.
	userPrefix   string
	sharedPrefix string
}

// environ is the environment lookup used during construction. It follows
// the [os.LookupEnv] contract.
type environ func(key string) (string, bool)

// osEnviron reads the process environment, falling back to the user
// database for the home directory when HOME is unset or empty.
func osEnviron(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	if key == _HOME && (!ok || val == "") {
		u, err := user.Current()
		if err != nil || u.HomeDir == "" {
			return "", false
		}
		return u.HomeDir, true
	}
	return val, ok
}

// New returns the base directories described by the process environment.
//
// The user-specific directories are taken from XDG_DATA_HOME,
// XDG_CONFIG_HOME, XDG_CACHE_HOME, XDG_STATE_HOME and XDG_RUNTIME_DIR,
// and the system directory lists from the colon-separated XDG_DATA_DIRS
// and XDG_CONFIG_DIRS. A variable that is unset, empty or holds a
// relative path contributes nothing, and the specification's default for
// it applies; XDG_RUNTIME_DIR has no default. The user's home directory
// is taken from HOME, or from the user database when HOME is not usable.
// If no home directory can be determined, the error is [ErrHomeNotFound].
func New() (*BaseDirectories, error) {
	return newWithEnviron("", "", osEnviron)
}

// NewWithPrefix is like [New], but all operations on the returned value
// are within the given subdirectory of the base directories, in the way
// described by [BaseDirectories.WithPrefix]. An application named myapp
// would usually use NewWithPrefix("myapp").
func NewWithPrefix(prefix string) (*BaseDirectories, error) {
	return newWithEnviron(prefix, "", osEnviron)
}

// NewWithProfile is like [NewWithPrefix], but additionally scopes
// operations on user-specific directories to the given profile
// subdirectory, in the way described by [BaseDirectories.WithProfile].
// Profiles allow an application to keep several independent sets of user
// files while sharing the system-installed defaults between them.
func NewWithProfile(prefix, profile string) (*BaseDirectories, error) {
	return newWithEnviron(prefix, profile, osEnviron)
}

func newWithEnviron(prefix, profile string, env environ) (*BaseDirectories, error) {
	home, ok := env(_HOME)
	if !ok || home == "" {
		return nil, ErrHomeNotFound
	}
	return &BaseDirectories{
		home: home,

		dataHome:   resolvePath(env, key_XDG_DATA_HOME, def_XDG_DATA_HOME, home),
		configHome: resolvePath(env, key_XDG_CONFIG_HOME, def_XDG_CONFIG_HOME, home),
		cacheHome:  resolvePath(env, key_XDG_CACHE_HOME, def_XDG_CACHE_HOME, home),
		stateHome:  resolvePath(env, key_XDG_STATE_HOME, def_XDG_STATE_HOME, home),
		runtimeDir: resolvePath(env, key_XDG_RUNTIME_DIR, def_XDG_RUNTIME_DIR, home),

		dataDirs:   resolvePathList(env, key_XDG_DATA_DIRS, def_XDG_DATA_DIRS),
		configDirs: resolvePathList(env, key_XDG_CONFIG_DIRS, def_XDG_CONFIG_DIRS),

		userPrefix:   filepath.Join(prefix, profile),
		sharedPrefix: prefix,
	}, nil
}

// resolvePath returns the cleaned value of the keyed environment variable
// if it holds an absolute path, or otherwise def resolved against home.
// The specification requires relative values be ignored, so they fall
// through to the default. An empty def means the variable has no default
// and resolvePath returns the empty string.
func resolvePath(env environ, key, def, home string) string {
	if val, ok := env(key); ok && filepath.IsAbs(val) {
		return filepath.Clean(val)
	}
	if def == "" {
		return ""
	}
	return filepath.Join(home, def)
}

// resolvePathList returns the absolute members of the colon-separated
// path list held by the keyed environment variable, in order. If the
// variable is unset or no member survives, the default list is used.
func resolvePathList(env environ, key, def string) []string {
	val, ok := env(key)
	if !ok {
		val = def
	}
	list := abspaths(val)
	if list == nil {
		list = abspaths(def)
	}
	return list
}

// abspaths splits a colon-separated path list, cleaning its members and
// dropping members that are not absolute. It returns nil when no member
// remains.
func abspaths(list string) []string {
	var paths []string
	for _, p := range filepath.SplitList(list) {
		if filepath.IsAbs(p) {
			paths = append(paths, filepath.Clean(p))
		}
	}
	return paths
}

// Home returns the user's home directory.
func (b *BaseDirectories) Home() string { return b.home }

// DataHome returns the user-specific data directory, with the value's
// prefix and profile applied.
func (b *BaseDirectories) DataHome() string {
	return filepath.Join(b.dataHome, b.userPrefix)
}

// ConfigHome returns the user-specific configuration directory, with the
// value's prefix and profile applied.
func (b *BaseDirectories) ConfigHome() string {
	return filepath.Join(b.configHome, b.userPrefix)
}

// CacheHome returns the user-specific cache directory, with the value's
// prefix and profile applied.
func (b *BaseDirectories) CacheHome() string {
	return filepath.Join(b.cacheHome, b.userPrefix)
}

// StateHome returns the user-specific state directory, with the value's
// prefix and profile applied.
func (b *BaseDirectories) StateHome() string {
	return filepath.Join(b.stateHome, b.userPrefix)
}

// DataDirs returns the system data directories in precedence order, most
// important first, with the value's prefix applied.
func (b *BaseDirectories) DataDirs() []string {
	return joinAll(b.dataDirs, b.sharedPrefix)
}

// ConfigDirs returns the system configuration directories in precedence
// order, most important first, with the value's prefix applied.
func (b *BaseDirectories) ConfigDirs() []string {
	return joinAll(b.configDirs, b.sharedPrefix)
}

func joinAll(dirs []string, name string) []string {
	joined := make([]string, len(dirs))
	for i, dir := range dirs {
		joined[i] = filepath.Join(dir, name)
	}
	return joined
}

// WithPrefix returns a copy of b with the relative path rel appended to
// the prefix applied within both the user-specific and system
// directories. It does not touch the file system, and b is unchanged. It
// is useful for plugin systems where each plugin keeps its files in a
// subdirectory of the application's own.
func (b *BaseDirectories) WithPrefix(rel string) *BaseDirectories {
	d := b.clone()
	d.userPrefix = filepath.Join(b.userPrefix, rel)
	d.sharedPrefix = filepath.Join(b.sharedPrefix, rel)
	return d
}

// WithProfile returns a copy of b with the relative path rel appended to
// the prefix applied within the user-specific directories only. System
// directories are unaffected, so searches fall back to files shared
// between profiles. It does not touch the file system, and b is
// unchanged.
func (b *BaseDirectories) WithProfile(rel string) *BaseDirectories {
	d := b.clone()
	d.userPrefix = filepath.Join(b.userPrefix, rel)
	return d
}

func (b *BaseDirectories) clone() *BaseDirectories {
	d := *b
	d.dataDirs = slices.Clone(b.dataDirs)
	d.configDirs = slices.Clone(b.configDirs)
	return &d
}

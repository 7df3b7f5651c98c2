// Package appdir provides constants and utilities for the .tasklane directory structure.
package appdir

import "path/filepath"

const (
	// Name is the application name used for user config directories.
	Name = "tasklane"

	// Dir is the name of the tasklane state directory.
	Dir = ".tasklane"

	// DefaultStoreDir is the file backend's directory (inside .tasklane).
	DefaultStoreDir = "store"

	// DefaultSQLiteFile is the sqlite backend's database (inside .tasklane).
	DefaultSQLiteFile = "store.db"

	// DefaultConfigFile is the config file name.
	DefaultConfigFile = "tasklane.toml"
)

// StoreDir returns the file backend's directory within a work directory.
func StoreDir(workDir string) string {
	return joinPath(workDir, DefaultStoreDir)
}

// SQLitePath returns the sqlite database path within a work directory.
func SQLitePath(workDir string) string {
	return joinPath(workDir, DefaultSQLiteFile)
}

// DirPath returns the full path to the .tasklane directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/tasklane/internal/appdir"
	"github.com/nibzard/tasklane/internal/storage"
)

// expandPath expands $VAR references and a leading ~ in p.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// StorePath returns where the configured backend keeps its data. An explicit
// Data setting wins; otherwise the store lives in the project's .tasklane
// directory.
func (c *Config) StorePath() string {
	if c.Data != "" {
		return c.Data
	}
	if c.Store == storage.BackendSQLite {
		return appdir.SQLitePath(c.ProjectRoot)
	}
	return appdir.StoreDir(c.ProjectRoot)
}

package config

import (
	"os"
	"path/filepath"

	"github.com/nibzard/tasklane/internal/appdir"
)

// findProjectConfigFile returns the first project config file present in
// the working directory.
func findProjectConfigFile() string {
	for _, name := range []string{appdir.DefaultConfigFile, "." + appdir.DefaultConfigFile} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

// findUserConfigFile returns ~/.tasklane/tasklane.toml if present, else
// tasklane/tasklane.toml under the OS user config directory.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, appdir.Dir, appdir.DefaultConfigFile))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appdir.Name, appdir.DefaultConfigFile))
	}
	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

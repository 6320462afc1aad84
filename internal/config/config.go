// Package config resolves where bookmatch keeps its data and loads user settings.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "bookmatch"

// Store file names inside the data directory.
const (
	UsersFile   = "users.json"
	BooksFile   = "books.json"
	HistoryFile = "history.json"
)

// GetDataDir resolves the base directory for all bookmatch storage. It checks
// BOOKMATCH_DIR first, then XDG paths, and finally falls back to the user's
// home directory.
func GetDataDir() string {
	if explicit := os.Getenv("BOOKMATCH_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, appName)
}

// GetConfigPath returns the settings file location. BOOKMATCH_CONFIG wins over
// the XDG config directory.
func GetConfigPath() string {
	if explicit := os.Getenv("BOOKMATCH_CONFIG"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	configHome := xdg.ConfigHome
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, appName, "config.yaml")
}

// StorePath joins a store file name onto a data directory, defaulting to
// GetDataDir when dir is empty.
func StorePath(dir, name string) string {
	if dir == "" {
		dir = GetDataDir()
	}
	return filepath.Join(dir, name)
}

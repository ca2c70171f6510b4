// Package storage persists user preferences in a local badger database.
// Games themselves are never stored.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessdrop"

// platformBase is the per-user application data root:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME (or ~/.local/share) elsewhere.
func platformBase() (string, error) {
	var env string
	switch runtime.GOOS {
	case "windows":
		env = "APPDATA"
	case "darwin":
	default:
		env = "XDG_DATA_HOME"
	}
	if dir := os.Getenv(env); env != "" && dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Roaming"), nil
	default:
		return filepath.Join(home, ".local", "share"), nil
	}
}

// GetDataDir returns the chessdrop data directory, creating it if needed.
func GetDataDir() (string, error) {
	base, err := platformBase()
	if err != nil {
		return "", fmt.Errorf("locate data directory: %w", err)
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the badger directory inside GetDataDir.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return DatabaseDirIn(dataDir)
}

// DatabaseDirIn returns (and creates) the database directory under dataDir.
func DatabaseDirIn(dataDir string) (string, error) {
	return ensureDir(filepath.Join(dataDir, "db"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

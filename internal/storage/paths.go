// Package storage persists user preferences and finished-game statistics.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appDirName = "chessrules"
	dbDirName  = "db"

	// DataDirEnv overrides the platform data directory, mostly for tests
	// and portable installs.
	DataDirEnv = "CHESSRULES_DATA_DIR"
)

// platformDataHome is where per-user application data lives:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME or ~/.local/share elsewhere.
func platformDataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func ensureDir(path string) (string, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	return path, nil
}

// DataDir returns the application data directory, creating it if needed.
// DataDirEnv takes precedence over the platform default.
func DataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return ensureDir(dir)
	}
	home, err := platformDataHome()
	if err != nil {
		return "", fmt.Errorf("locate data directory: %w", err)
	}
	return ensureDir(filepath.Join(home, appDirName))
}

// DatabaseDir returns the directory holding the BadgerDB files.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, dbDirName))
}

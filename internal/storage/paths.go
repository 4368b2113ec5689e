// Package storage persists engine preferences, finished games and result
// statistics in BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "chesscore"

	// EnvDatabaseDir overrides the database location for every binary.
	EnvDatabaseDir = "CHESSCORE_DB"
)

// userDataHome returns the per-user base directory applications keep
// their data under: ~/Library/Application Support on macOS, %APPDATA% on
// Windows and $XDG_DATA_HOME (or ~/.local/share) elsewhere.
func userDataHome() (string, error) {
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

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DataDir returns the chesscore directory under the user's data home,
// creating it if needed.
func DataDir() (string, error) {
	home, err := userDataHome()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(home, appName))
}

// DatabaseDir returns where game records live: $CHESSCORE_DB when set,
// otherwise the db directory inside DataDir. The directory is created if
// needed.
func DatabaseDir() (string, error) {
	if dir := os.Getenv(EnvDatabaseDir); dir != "" {
		return ensureDir(dir)
	}

	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "db"))
}

package storage

import (
	"os"
	"path/filepath"
)

const appName = ".cavern"

// DefaultStoragePath returns the default storage location for Cavern
// Platform-specific paths:
//   - macOS/Linux: ~/.cavern
//   - Windows: %USERPROFILE%\.cavern
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appName), nil
}

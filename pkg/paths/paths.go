// Package paths centralizes runtime file locations.
//
// All runtime state (MRU file, instance lock, IPC socket) lives under
// ~/.cache/open-sesame/ with 0700 permissions. Configuration uses the
// XDG config directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Owner read/write/execute only. Runtime state must never be readable by
// other users.
const secureDirMode = 0o700

// CacheDir returns the open-sesame cache directory, creating it with
// secure permissions if needed. Never falls back to /tmp or other
// world-accessible locations.
func CacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}

	dir := filepath.Join(base, "open-sesame")
	if err := ensureSecureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigDir returns ~/.config/open-sesame (or $XDG_CONFIG_HOME/open-sesame).
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine config directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "open-sesame"), nil
}

// LockFile returns the single-instance lock file path.
func LockFile() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "instance.lock"), nil
}

// MRUFile returns the MRU state file path.
func MRUFile() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mru"), nil
}

// SocketFile returns the IPC socket path.
func SocketFile() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ipc.sock"), nil
}

func ensureSecureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", dir)
		}
		if info.Mode().Perm() != secureDirMode {
			if err := os.Chmod(dir, secureDirMode); err != nil {
				return fmt.Errorf("failed to fix permissions on %s: %w", dir, err)
			}
		}
		return nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, secureDirMode); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		// MkdirAll mode is subject to umask
		if err := os.Chmod(dir, secureDirMode); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", dir, err)
		}
		return nil
	default:
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
}

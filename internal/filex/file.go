// Package filex prepares local output locations for exported history and
// downloaded images.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir returns dirName as an absolute path, creating it if needed.
// Relative names are taken from the current working directory; "" means
// the working directory itself.
func EnsureDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// EnsureParentDir creates the directory that will hold the file at path and
// returns path made absolute.
func EnsureParentDir(path string) (string, error) {
	dir, err := EnsureDir(filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(path)), nil
}

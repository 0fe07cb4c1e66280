package util

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// FileExists returns true if the file or directory at path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExpandTilde expands a leading ~ to the current user's home directory.
// Paths without a leading ~ are returned unchanged.
func ExpandTilde(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(usr.HomeDir, filePath[1:]), nil
}

// LooksSafeToDelete returns true if filePath is at least minLength
// characters long and is at least minSeparators directories deep.
// This is a guard against deleting things like "/" or "/usr/local".
func LooksSafeToDelete(filePath string, minLength, minSeparators int) bool {
	separator := string(os.PathSeparator)
	return len(filePath) >= minLength &&
		strings.Count(filePath, separator) >= minSeparators
}

// Package discover locates default input files in the personal directory.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FirstFile returns the lexically first file in dir whose name matches
// pattern, e.g. "*.yaml". Both a missing directory and no match wrap
// fs.ErrNotExist.
func FirstFile(dir, pattern string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("personal directory not found: %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("personal directory %s is not a directory: %w", dir, fs.ErrNotExist)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("glob %s: %w", pattern, err)
	}

	files := matches[:0]
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no %s files found in %s/: %w", pattern, dir, fs.ErrNotExist)
	}

	sort.Strings(files)
	return files[0], nil
}

// Resolve returns explicit when set, otherwise the first pattern match in dir.
func Resolve(explicit, dir, pattern string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return FirstFile(dir, pattern)
}
